package auth

import (
	"bytes"
	"math/rand"
	"strconv"
	"testing"
)

func TestGenerateIsSixDigits(t *testing.T) {
	gen := NewCodeGenerator(rand.New(rand.NewSource(1)))

	for i := 0; i < 1000; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 0 || n >= codeSpace {
			t.Fatalf("code %q out of range", code)
		}
	}
}

func TestGeneratePreservesLeadingZeros(t *testing.T) {
	// An all-zero entropy source yields the smallest value in the range.
	gen := NewCodeGenerator(bytes.NewReader(make([]byte, 64)))

	code, err := gen.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if code != "000000" {
		t.Fatalf("expected 000000, got %q", code)
	}
}

func TestGenerateDeterministicWithInjectedSource(t *testing.T) {
	a := NewCodeGenerator(rand.New(rand.NewSource(42)))
	b := NewCodeGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		ca, err := a.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		cb, err := b.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if ca != cb {
			t.Fatalf("same seed diverged: %q vs %q", ca, cb)
		}
	}
}
