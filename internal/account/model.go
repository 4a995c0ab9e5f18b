package account

import (
	"errors"
	"time"
)

var (
	// ErrEmailTaken indicates a registration attempt with an email that
	// already belongs to an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound indicates a lookup miss, or a guarded update whose
	// condition no longer held.
	ErrNotFound = errors.New("account not found")
)

// Account represents a registered user and the pending credential codes
// attached to it. A code and its expiry are always set or cleared together.
type Account struct {
	ID             string
	Email          string
	PasswordHash   []byte
	EmailConfirmed bool

	VerificationCode       *string
	VerificationCodeExpiry *time.Time

	ResetCode       *string
	ResetCodeExpiry *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// DisplayName returns what the token and UI show for the account. The app
// has no separate user name field; the email doubles as the display name.
func (a Account) DisplayName() string {
	return a.Email
}
