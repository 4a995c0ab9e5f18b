package forms

import (
	"context"
	"errors"
	"testing"
	"time"
)

const userA = "11111111-1111-1111-1111-111111111111"
const userB = "22222222-2222-2222-2222-222222222222"

func validInput() SubmitInput {
	return SubmitInput{Text1: "hello", Num1: 75, Date1: time.Now().AddDate(0, 0, 7)}
}

func TestSubmitAndList(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	first, err := svc.Submit(ctx, userA, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected generated id")
	}

	in := validInput()
	in.Text1 = "second"
	if _, err := svc.Submit(ctx, userA, in); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries, err := svc.List(ctx, userA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	other, err := svc.List(ctx, userB)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("entries leaked across users: %d", len(other))
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"empty text", func(in *SubmitInput) { in.Text1 = "" }},
		{"text too long", func(in *SubmitInput) {
			long := make([]byte, 101)
			for i := range long {
				long[i] = 'x'
			}
			in.Text1 = string(long)
		}},
		{"num below range", func(in *SubmitInput) { in.Num1 = 49 }},
		{"num above range", func(in *SubmitInput) { in.Num1 = 101 }},
		{"date in the past", func(in *SubmitInput) { in.Date1 = time.Now().AddDate(0, 0, -1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			if _, err := svc.Submit(ctx, userA, in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSubmitBoundaryValues(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	in := validInput()
	in.Num1 = 50
	if _, err := svc.Submit(ctx, userA, in); err != nil {
		t.Fatalf("num=50 should pass: %v", err)
	}
	in.Num1 = 100
	if _, err := svc.Submit(ctx, userA, in); err != nil {
		t.Fatalf("num=100 should pass: %v", err)
	}
}
