package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/born-otomasyon/born_api/internal/account"
)

// ErrMissingSecret is returned when token issuance is attempted without a
// configured signing secret. Fatal; never retried.
var ErrMissingSecret = errors.New("jwt signing secret is not configured")

// IssuedToken is the bearer credential handed back on register and login.
type IssuedToken struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// TokenClaims is the fixed claim set read back from a verified token.
type TokenClaims struct {
	SubjectID string
	Email     string
	Name      string
}

// TokenIssuer mints and verifies HS256 bearer tokens. Verification is a
// pure function of the token and the secret; no session state is kept.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer builds an issuer with the given secret and token lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the account with subject, email and display name
// claims.
func (t *TokenIssuer) Issue(acc account.Account) (IssuedToken, error) {
	if len(t.secret) == 0 {
		return IssuedToken{}, ErrMissingSecret
	}
	now := t.now()
	exp := now.Add(t.ttl)
	claims := jwt.MapClaims{
		"sub":   acc.ID,
		"email": acc.Email,
		"name":  acc.DisplayName(),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return IssuedToken{Token: signed, Email: acc.Email, ExpiresAt: exp}, nil
}

// Verify checks signature and expiry and returns the embedded claims.
func (t *TokenIssuer) Verify(token string) (TokenClaims, error) {
	if len(t.secret) == 0 {
		return TokenClaims{}, ErrMissingSecret
	}
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(t.now))
	if err != nil {
		return TokenClaims{}, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return TokenClaims{}, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if sub == "" {
		return TokenClaims{}, errors.New("token missing subject")
	}
	return TokenClaims{SubjectID: sub, Email: email, Name: name}, nil
}
