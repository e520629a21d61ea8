package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.PrincipalFromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(principal.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, principal.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
