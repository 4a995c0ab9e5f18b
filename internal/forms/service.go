package forms

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	maxTextLen = 100
	minNum     = 50
	maxNum     = 100
)

// ErrValidation marks a rejected submission; the message is caller-safe.
var ErrValidation = errors.New("validation failed")

// Service applies the submission rules and persists entries.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the form service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit validates and stores a form entry for the user.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Entry, error) {
	if in.Text1 == "" || utf8.RuneCountInString(in.Text1) > maxTextLen {
		return Entry{}, fmt.Errorf("%w: Text1 must be between 1 and 100 characters", ErrValidation)
	}
	if in.Num1 < minNum || in.Num1 > maxNum {
		return Entry{}, fmt.Errorf("%w: Num1 must be between 50 and 100", ErrValidation)
	}
	if !in.Date1.After(startOfToday(s.now())) {
		return Entry{}, fmt.Errorf("%w: Date1 must be a future date", ErrValidation)
	}

	entry := Entry{
		Text1:     in.Text1,
		Num1:      in.Num1,
		Date1:     in.Date1,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return Entry{}, fmt.Errorf("store entry: %w", err)
	}
	return entry, nil
}

// List returns the user's entries, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	return s.repo.ListByUser(ctx, userID)
}

// startOfToday returns today's midnight; a valid Date1 must fall strictly
// after it, matching the client's date-only picker.
func startOfToday(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
