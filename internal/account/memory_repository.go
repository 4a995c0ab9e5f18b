package account

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by lower-cased email
}

// NewMemoryRepository builds an in-memory account store for development and
// tests. The mutex gives the same per-record atomicity the guarded SQL
// updates provide.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, acc Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(acc.Email)
	if _, exists := r.accounts[key]; exists {
		return ErrEmailTaken
	}
	r.accounts[key] = acc
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[strings.ToLower(email)]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, acc := range r.accounts {
		if acc.ID == id {
			return acc, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *memoryRepository) SetVerificationCode(_ context.Context, id, code string, expiry time.Time) error {
	return r.mutate(id, func(acc *Account) bool {
		acc.VerificationCode = &code
		acc.VerificationCodeExpiry = &expiry
		return true
	})
}

func (r *memoryRepository) ConfirmEmail(_ context.Context, id, code string) error {
	return r.mutate(id, func(acc *Account) bool {
		if acc.EmailConfirmed || acc.VerificationCode == nil || *acc.VerificationCode != code {
			return false
		}
		acc.EmailConfirmed = true
		acc.VerificationCode = nil
		acc.VerificationCodeExpiry = nil
		return true
	})
}

func (r *memoryRepository) SetResetCode(_ context.Context, id, code string, expiry time.Time) error {
	return r.mutate(id, func(acc *Account) bool {
		acc.ResetCode = &code
		acc.ResetCodeExpiry = &expiry
		return true
	})
}

func (r *memoryRepository) ResetPassword(_ context.Context, id, code string, newHash []byte) error {
	return r.mutate(id, func(acc *Account) bool {
		if acc.ResetCode == nil || *acc.ResetCode != code {
			return false
		}
		acc.PasswordHash = newHash
		acc.ResetCode = nil
		acc.ResetCodeExpiry = nil
		return true
	})
}

func (r *memoryRepository) SetLastLogin(_ context.Context, id string, at time.Time) error {
	return r.mutate(id, func(acc *Account) bool {
		acc.LastLoginAt = &at
		return true
	})
}

// mutate applies fn to the account under the write lock. fn returning false
// means its guard condition failed, reported as ErrNotFound like the SQL
// repository does for zero affected rows.
func (r *memoryRepository) mutate(id string, fn func(*Account) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, acc := range r.accounts {
		if acc.ID == id {
			if !fn(&acc) {
				return ErrNotFound
			}
			r.accounts[key] = acc
			return nil
		}
	}
	return ErrNotFound
}
