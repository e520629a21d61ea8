package jwt

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := NewJWTService("unit-test-secret", "15m")
	p := auth.Principal{UserID: "u-1", Role: user.RoleHR, Email: "hr@example.com", CompanyID: "c-1"}

	token, expiresAt, err := svc.GenerateAccessToken(p)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	got, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "15m")
	verifier := NewJWTService("secret-b", "15m")

	token, _, err := issuer.GenerateAccessToken(auth.Principal{UserID: "u-1", Role: user.RoleUser})
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("secret", "soon")
	_, _, err := svc.GenerateAccessToken(auth.Principal{UserID: "u-1", Role: user.RoleUser})
	assert.Error(t, err)
}
