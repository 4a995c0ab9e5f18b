package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/born-otomasyon/born_api/internal/account"
)

// Handler exposes the auth endpoints consumed by the Angular client. Field
// names mirror the original API exactly.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds the auth handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token      string    `json:"token"`
	Email      string    `json:"email"`
	Expiration time.Time `json:"expiration"`
}

// Register creates an account and returns a token plus a prompt to verify.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Email and password are required.")
	}

	issued, err := h.svc.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			return fiber.NewError(http.StatusBadRequest, "Registration failed. Email might already be in use.")
		}
		h.logger.Error("register", "error", err)
		return fiber.NewError(http.StatusBadRequest, "Registration failed. Email might already be in use.")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message":    "Registration successful. Please check your email to confirm your account.",
		"token":      issued.Token,
		"email":      issued.Email,
		"expiration": issued.ExpiresAt,
	})
}

// Login authenticates and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Email and password are required.")
	}

	issued, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "Invalid credentials or email not confirmed.")
		}
		h.logger.Error("login", "error", err)
		return fiber.NewError(http.StatusUnauthorized, "Invalid credentials or email not confirmed.")
	}

	return c.Status(http.StatusOK).JSON(tokenResponse{
		Token:      issued.Token,
		Email:      issued.Email,
		Expiration: issued.ExpiresAt,
	})
}

type verifyEmailRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// VerifyEmail consumes a verification code.
func (h *Handler) VerifyEmail(c *fiber.Ctx) error {
	var req verifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.VerificationCode == "" {
		return fiber.NewError(http.StatusBadRequest, "Email and verification code are required.")
	}

	if err := h.svc.VerifyEmail(c.UserContext(), req.Email, req.VerificationCode); err != nil {
		if !errors.Is(err, ErrCodeInvalid) {
			h.logger.Error("verify email", "error", err)
		}
		return fiber.NewError(http.StatusBadRequest, "Verification failed. Invalid code or email.")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Email verified successfully."})
}

type emailRequest struct {
	Email string `json:"email"`
}

// ResendVerification regenerates and redelivers the verification code.
func (h *Handler) ResendVerification(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "Email is required.")
	}

	if err := h.svc.ResendVerification(c.UserContext(), req.Email); err != nil {
		if !errors.Is(err, ErrCodeInvalid) {
			h.logger.Error("resend verification", "error", err)
		}
		return fiber.NewError(http.StatusBadRequest, "Failed to resend verification code.")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Verification code sent successfully."})
}

// ForgotPassword starts a reset. The response is uniform whether or not the
// account exists; downstream failures are logged, not surfaced.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "Email is required.")
	}

	if err := h.svc.ForgotPassword(c.UserContext(), req.Email); err != nil {
		h.logger.Error("forgot password", "error", err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "If the email exists, a password reset link has been sent."})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword consumes a reset code and sets the new password. The wire
// field is called "token" even though it carries the 6-digit code; the
// original client sends it that way.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "Email, token and new password are required.")
	}

	if err := h.svc.ResetPassword(c.UserContext(), req.Email, req.Token, req.NewPassword); err != nil {
		if !errors.Is(err, ErrCodeInvalid) {
			h.logger.Error("reset password", "error", err)
		}
		return fiber.NewError(http.StatusBadRequest, "Password reset failed. Invalid or expired token.")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Password reset successful. You can now log in with your new password."})
}
