package auth

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Claim names carried by access tokens.
const (
	ClaimUserID     = "user_id"
	ClaimRole       = "role"
	ClaimName       = "name"
	ClaimEmail      = "email"
	ClaimCompanyID  = "company_id"
	ClaimEmployeeID = "employee_id"
	ClaimType       = "type"

	TokenTypeAccess = "access"
)

// Principal is the authenticated caller as issued by the identity service.
type Principal struct {
	UserID     string
	Role       user.Role
	Name       string
	Email      string
	EmployeeID string
	CompanyID  string
}

// Claims renders the principal as access-token claims.
func (p Principal) Claims() map[string]interface{} {
	claims := map[string]interface{}{
		ClaimUserID: p.UserID,
		ClaimRole:   string(p.Role),
		ClaimName:   p.Name,
		ClaimEmail:  p.Email,
		ClaimType:   TokenTypeAccess,
	}
	if p.CompanyID != "" {
		claims[ClaimCompanyID] = p.CompanyID
	}
	if p.EmployeeID != "" {
		claims[ClaimEmployeeID] = p.EmployeeID
	}
	return claims
}

// PrincipalFromContext extracts the caller from the verified JWT stored in ctx.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if token == nil {
		return Principal{}, ErrUnauthenticated
	}
	return PrincipalFromClaims(claims)
}

// PrincipalFromClaims maps raw token claims to a Principal.
func PrincipalFromClaims(claims map[string]interface{}) (Principal, error) {
	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return Principal{}, fmt.Errorf("%w: %s", ErrMissingClaim, ClaimUserID)
	}

	role, ok := claims[ClaimRole].(string)
	if !ok || role == "" {
		return Principal{}, fmt.Errorf("%w: %s", ErrMissingClaim, ClaimRole)
	}

	p := Principal{
		UserID: userID,
		Role:   user.Role(role),
	}
	p.Name, _ = claims[ClaimName].(string)
	p.Email, _ = claims[ClaimEmail].(string)
	p.CompanyID, _ = claims[ClaimCompanyID].(string)
	p.EmployeeID, _ = claims[ClaimEmployeeID].(string)

	return p, nil
}
