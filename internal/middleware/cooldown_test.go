package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func cooldownApp(t *testing.T, cache *redis.Client, cooldown time.Duration) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Post("/api/auth/resend-verification", CodeResendCooldown(cache, cooldown), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func resend(t *testing.T, app *fiber.App, email string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/resend-verification",
		strings.NewReader(`{"email":"`+email+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp.StatusCode
}

func TestCooldownThrottlesRepeatSends(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := cooldownApp(t, cache, time.Minute)

	if got := resend(t, app, "a@x.com"); got != http.StatusOK {
		t.Fatalf("first send: expected 200, got %d", got)
	}
	if got := resend(t, app, "a@x.com"); got != http.StatusTooManyRequests {
		t.Fatalf("second send: expected 429, got %d", got)
	}
	// A different address is unaffected.
	if got := resend(t, app, "b@x.com"); got != http.StatusOK {
		t.Fatalf("other email: expected 200, got %d", got)
	}

	mr.FastForward(time.Minute)
	if got := resend(t, app, "a@x.com"); got != http.StatusOK {
		t.Fatalf("after window: expected 200, got %d", got)
	}
}

func TestCooldownDisabled(t *testing.T) {
	app := cooldownApp(t, nil, time.Minute)
	for i := 0; i < 3; i++ {
		if got := resend(t, app, "a@x.com"); got != http.StatusOK {
			t.Fatalf("disabled cooldown blocked request: %d", got)
		}
	}

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app = cooldownApp(t, cache, 0)
	for i := 0; i < 3; i++ {
		if got := resend(t, app, "a@x.com"); got != http.StatusOK {
			t.Fatalf("zero cooldown blocked request: %d", got)
		}
	}
}

func TestCooldownFailsOpenOnCacheError(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	app := cooldownApp(t, cache, time.Minute)
	if got := resend(t, app, "a@x.com"); got != http.StatusOK {
		t.Fatalf("cache outage should fail open, got %d", got)
	}
}
