package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/born-otomasyon/born_api/internal/auth"
)

// RegisterAuthRoutes wires the credential lifecycle endpoints. The cooldown
// guard covers the two unbounded-retry surfaces (resend and forgot).
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, cooldown fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Post("/verify-email", h.VerifyEmail)
	if cooldown != nil {
		group.Post("/resend-verification", cooldown, h.ResendVerification)
		group.Post("/forgot-password", cooldown, h.ForgotPassword)
	} else {
		group.Post("/resend-verification", h.ResendVerification)
		group.Post("/forgot-password", h.ForgotPassword)
	}
	group.Post("/reset-password", h.ResetPassword)
}
