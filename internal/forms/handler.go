package forms

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the authenticated form endpoints.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler builds the form handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type submitRequest struct {
	Text1 string    `json:"text1"`
	Num1  int       `json:"num1"`
	Date1 time.Time `json:"date1"`
}

type entryResponse struct {
	ID        int64     `json:"id"`
	Text1     string    `json:"text1"`
	Num1      int       `json:"num1"`
	Date1     time.Time `json:"date1"`
	CreatedAt time.Time `json:"createdAt"`
}

// Submit stores a form entry for the authenticated user.
func (h *Handler) Submit(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "User not found")
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.Submit(c.UserContext(), userID, SubmitInput{Text1: req.Text1, Num1: req.Num1, Date1: req.Date1})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return fiber.NewError(http.StatusBadRequest, validationMessage(err))
		}
		h.logger.Error("submit form", "user_id", userID, "error", err)
		return fiber.NewError(http.StatusInternalServerError, "An error occurred while submitting the form")
	}

	h.logger.Info("form submitted", "user_id", userID, "entry_id", entry.ID)
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Form submitted successfully", "id": entry.ID})
}

// List returns the authenticated user's entries, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "User not found")
	}

	entries, err := h.svc.List(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("list forms", "user_id", userID, "error", err)
		return fiber.NewError(http.StatusInternalServerError, "An error occurred while retrieving forms")
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{ID: e.ID, Text1: e.Text1, Num1: e.Num1, Date1: e.Date1, CreatedAt: e.CreatedAt})
	}
	return c.Status(http.StatusOK).JSON(out)
}

// validationMessage strips the sentinel prefix so the client sees only the
// field detail.
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
