package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/born-otomasyon/born_api/internal/account"
	"github.com/born-otomasyon/born_api/internal/notify"
)

var (
	// ErrInvalidCredentials covers missing accounts, unconfirmed emails and
	// wrong passwords alike, so login failures never reveal which it was.
	ErrInvalidCredentials = errors.New("invalid credentials or email not confirmed")
	// ErrCodeInvalid covers missing accounts and bad or expired codes for
	// the same reason.
	ErrCodeInvalid = errors.New("invalid or expired code")
)

// Service orchestrates the credential lifecycle: register, login, email
// verification and password reset. It owns no session state; every call is
// a single read-modify-write against the account store.
type Service struct {
	repo     account.Repository
	codes    *CodeGenerator
	tokens   *TokenIssuer
	notifier notify.Notifier
	logger   *slog.Logger
	codeTTL  time.Duration
	now      func() time.Time
}

// NewService wires the workflow engine.
func NewService(repo account.Repository, codes *CodeGenerator, tokens *TokenIssuer, notifier notify.Notifier, logger *slog.Logger, codeTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		codes:    codes,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		codeTTL:  codeTTL,
		now:      time.Now,
	}
}

// Register creates an unconfirmed account, mails it a verification code and
// issues a bearer token. The token is usable before the email is confirmed;
// login still refuses unconfirmed accounts, so the window only covers
// endpoints that accept a bare bearer token.
func (s *Service) Register(ctx context.Context, email, password string) (IssuedToken, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.logger.Warn("registration attempt with existing email", "email", email)
		return IssuedToken{}, account.ErrEmailTaken
	} else if !errors.Is(err, account.ErrNotFound) {
		return IssuedToken{}, fmt.Errorf("lookup account: %w", err)
	}

	code, err := s.codes.Generate()
	if err != nil {
		return IssuedToken{}, err
	}
	hash, err := account.HashPassword(password)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("hash password: %w", err)
	}

	expiry := s.now().Add(s.codeTTL)
	acc := account.Account{
		ID:                     uuid.NewString(),
		Email:                  email,
		PasswordHash:           hash,
		VerificationCode:       &code,
		VerificationCodeExpiry: &expiry,
		CreatedAt:              s.now().UTC(),
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		return IssuedToken{}, err
	}

	// Persist-then-notify: a delivery failure is surfaced but the account
	// stays created, so the user can ask for a resend.
	if err := s.notifier.SendVerificationCode(ctx, email, code); err != nil {
		s.logger.Error("send verification code", "email", email, "error", err)
		return IssuedToken{}, fmt.Errorf("send verification code: %w", err)
	}

	return s.tokens.Issue(acc)
}

// Login validates credentials, stamps the login time and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (IssuedToken, error) {
	email = normalizeEmail(email)

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return IssuedToken{}, ErrInvalidCredentials
		}
		return IssuedToken{}, fmt.Errorf("lookup account: %w", err)
	}
	if !acc.EmailConfirmed || !account.CheckPassword(acc.PasswordHash, password) {
		return IssuedToken{}, ErrInvalidCredentials
	}

	if err := s.repo.SetLastLogin(ctx, acc.ID, s.now().UTC()); err != nil {
		return IssuedToken{}, fmt.Errorf("stamp login: %w", err)
	}

	return s.tokens.Issue(acc)
}

// VerifyEmail consumes a verification code and confirms the account. Codes
// are single use; the guarded repository update clears the pair in the same
// step that sets the confirmed flag.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrCodeInvalid
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if acc.EmailConfirmed || acc.VerificationCode == nil || *acc.VerificationCode != code {
		return ErrCodeInvalid
	}
	if s.expired(*acc.VerificationCodeExpiry) {
		return ErrCodeInvalid
	}

	if err := s.repo.ConfirmEmail(ctx, acc.ID, code); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			// Consumed or replaced between read and update.
			return ErrCodeInvalid
		}
		return fmt.Errorf("confirm email: %w", err)
	}
	return nil
}

// ResendVerification overwrites the pending verification code with a fresh
// one and redelivers it.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrCodeInvalid
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if acc.EmailConfirmed {
		return ErrCodeInvalid
	}

	code, err := s.codes.Generate()
	if err != nil {
		return err
	}
	if err := s.repo.SetVerificationCode(ctx, acc.ID, code, s.now().Add(s.codeTTL)); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}
	if err := s.notifier.SendVerificationCode(ctx, email, code); err != nil {
		s.logger.Error("send verification code", "email", email, "error", err)
		return fmt.Errorf("send verification code: %w", err)
	}
	return nil
}

// ForgotPassword starts a password reset for confirmed accounts. Missing or
// unconfirmed accounts report success without any state change or
// notification, so the endpoint cannot be used to enumerate emails. Only a
// downstream storage or delivery failure surfaces as an error.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if !acc.EmailConfirmed {
		return nil
	}

	code, err := s.codes.Generate()
	if err != nil {
		return err
	}
	if err := s.repo.SetResetCode(ctx, acc.ID, code, s.now().Add(s.codeTTL)); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}
	if err := s.notifier.SendPasswordResetCode(ctx, email, code); err != nil {
		s.logger.Error("send password reset code", "email", email, "error", err)
		return fmt.Errorf("send password reset code: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset code and installs the new password. A
// storage failure leaves the code in place so the same code stays
// retryable.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrCodeInvalid
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if acc.ResetCode == nil || *acc.ResetCode != code {
		return ErrCodeInvalid
	}
	if s.expired(*acc.ResetCodeExpiry) {
		return ErrCodeInvalid
	}

	hash, err := account.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.ResetPassword(ctx, acc.ID, code, hash); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return ErrCodeInvalid
		}
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// expired treats the boundary instant as already expired.
func (s *Service) expired(expiry time.Time) bool {
	return !s.now().Before(expiry)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
