package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers credential codes to the user out of band. Delivery is
// fire-and-forget from the workflow's point of view; errors propagate but
// already-persisted state is never rolled back.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email, code string) error
}

// LogNotifier writes codes to the structured logger instead of sending
// mail. Default in development, where no SMTP endpoint is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a logging notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendVerificationCode logs the verification code.
func (n *LogNotifier) SendVerificationCode(_ context.Context, email, code string) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("email verification code", "to", email, "code", code)
	return nil
}

// SendPasswordResetCode logs the reset code.
func (n *LogNotifier) SendPasswordResetCode(_ context.Context, email, code string) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("password reset code", "to", email, "code", code)
	return nil
}
