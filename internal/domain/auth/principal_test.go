package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalFromClaims(t *testing.T) {
	p, err := PrincipalFromClaims(map[string]interface{}{
		ClaimUserID:    "u-1",
		ClaimRole:      "HR",
		ClaimName:      "Ayu",
		ClaimEmail:     "ayu@example.com",
		ClaimCompanyID: "c-1",
	})
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: "u-1", Role: user.RoleHR, Name: "Ayu", Email: "ayu@example.com", CompanyID: "c-1"}, p)

	_, err = PrincipalFromClaims(map[string]interface{}{ClaimRole: "HR"})
	assert.ErrorIs(t, err, ErrMissingClaim)

	_, err = PrincipalFromClaims(map[string]interface{}{ClaimUserID: "u-1"})
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestPrincipalFromContext_RoundTrip(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	want := Principal{UserID: "u-2", Role: user.RoleEngineer, Name: "Budi", Email: "budi@example.com"}

	token, _, err := ja.Encode(want.Claims())
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	got, err := PrincipalFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPrincipalFromContext_NoToken(t *testing.T) {
	_, err := PrincipalFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
