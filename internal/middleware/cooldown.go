package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const cooldownPrefix = "cooldown:v1:"

// CodeResendCooldown throttles code-sending endpoints per email address.
// One send is allowed per cooldown window; further requests inside the
// window get 429. A zero cooldown or missing Redis disables the check, and
// cache errors fail open so mail delivery never depends on Redis health.
func CodeResendCooldown(cache *redis.Client, cooldown time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cache == nil || cooldown <= 0 {
			return c.Next()
		}

		var req struct {
			Email string `json:"email"`
		}
		_ = c.BodyParser(&req)
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			return c.Next() // handler rejects the empty email itself
		}

		key := cooldownPrefix + c.Path() + ":" + email
		set, err := cache.SetNX(c.UserContext(), key, 1, cooldown).Result()
		if err != nil {
			return c.Next()
		}
		if !set {
			return fiber.NewError(http.StatusTooManyRequests, "A code was sent recently. Please wait before requesting another.")
		}
		return c.Next()
	}
}
