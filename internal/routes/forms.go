package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/born-otomasyon/born_api/internal/forms"
)

// RegisterFormRoutes wires the authenticated form endpoints.
func RegisterFormRoutes(r fiber.Router, h *forms.Handler) {
	group := r.Group("/form")
	group.Post("/", h.Submit)
	group.Get("/", h.List)
}
