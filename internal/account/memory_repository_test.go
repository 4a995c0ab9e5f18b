package account

import (
	"context"
	"errors"
	"testing"
	"time"
)

func seedAccount(t *testing.T, repo Repository) Account {
	t.Helper()
	acc := Account{
		ID:        "33333333-3333-3333-3333-333333333333",
		Email:     "a@x.com",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), acc); err != nil {
		t.Fatalf("create: %v", err)
	}
	return acc
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	seedAccount(t, repo)

	err := repo.Create(context.Background(), Account{ID: "x", Email: "A@X.COM"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestConfirmEmailGuard(t *testing.T) {
	repo := NewMemoryRepository()
	acc := seedAccount(t, repo)
	ctx := context.Background()

	expiry := time.Now().Add(10 * time.Minute)
	if err := repo.SetVerificationCode(ctx, acc.ID, "123456", expiry); err != nil {
		t.Fatalf("set code: %v", err)
	}

	// A stale code observed before a concurrent overwrite must not consume.
	if err := repo.ConfirmEmail(ctx, acc.ID, "654321"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected guard failure, got %v", err)
	}
	if err := repo.ConfirmEmail(ctx, acc.ID, "123456"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.EmailConfirmed || got.VerificationCode != nil || got.VerificationCodeExpiry != nil {
		t.Fatalf("confirmation did not clear the code pair: %+v", got)
	}

	// Second consumption of the same code fails.
	if err := repo.ConfirmEmail(ctx, acc.ID, "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected single-use code, got %v", err)
	}
}

func TestResetPasswordGuard(t *testing.T) {
	repo := NewMemoryRepository()
	acc := seedAccount(t, repo)
	ctx := context.Background()

	if err := repo.SetResetCode(ctx, acc.ID, "123456", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("set code: %v", err)
	}

	if err := repo.ResetPassword(ctx, acc.ID, "999999", []byte("hash")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected guard failure, got %v", err)
	}
	if err := repo.ResetPassword(ctx, acc.ID, "123456", []byte("hash")); err != nil {
		t.Fatalf("reset: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ResetCode != nil || got.ResetCodeExpiry != nil {
		t.Fatalf("reset did not clear the code pair: %+v", got)
	}
	if string(got.PasswordHash) != "hash" {
		t.Fatalf("hash not replaced")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "Secret1") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "Secret2") {
		t.Fatalf("wrong password accepted")
	}
}
