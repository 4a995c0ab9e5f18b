package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-otomasyon/born_api/internal/account"
)

func testAccount() account.Account {
	return account.Account{ID: "5f9b6f5e-3a70-4b87-9b3f-6f2b1e9c4d10", Email: "a@x.com"}
}

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 24*time.Hour)

	issued, err := issuer.Issue(testAccount())
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", issued.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), issued.ExpiresAt, time.Minute)

	claims, err := issuer.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "5f9b6f5e-3a70-4b87-9b3f-6f2b1e9c4d10", claims.SubjectID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "a@x.com", claims.Name)
}

func TestIssueWithoutSecret(t *testing.T) {
	issuer := NewTokenIssuer("", 24*time.Hour)

	_, err := issuer.Issue(testAccount())
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenIssuer("secret-one", time.Hour).Issue(testAccount())
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-two", time.Hour).Verify(issued.Token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	issued, err := issuer.Issue(testAccount())
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Verify(issued.Token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not.a.token")
	assert.Error(t, err)
}
