package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/born-otomasyon/born_api/internal/account"
	"github.com/born-otomasyon/born_api/internal/auth"
)

func guardedApp(tokens *auth.TokenIssuer) *fiber.App {
	app := fiber.New()
	app.Get("/api/form", JWTAuth(tokens), func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.SendString(uid)
	})
	return app
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	issued, err := tokens.Issue(account.Account{ID: "user-1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := guardedApp(tokens)
	req := httptest.NewRequest(http.MethodGet, "/api/form", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+issued.Token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestJWTAuthRejectsMissingOrBadToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	app := guardedApp(tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/form", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/form", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", resp.StatusCode)
	}

	// Token signed with a different secret.
	other, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue(account.Account{ID: "user-1", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/form", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+other.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong secret: expected 401, got %d", resp.StatusCode)
	}
}
