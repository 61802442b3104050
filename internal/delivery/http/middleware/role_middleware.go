package middleware

import (
	"net/http"

	"medicore/internal/domain/entity"
	"medicore/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireFrontDesk admits the roles that book and edit appointments.
func RequireFrontDesk(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse)(next)
}

// RequireBilling admits the roles that record payments and read finances.
func RequireBilling(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleReceptionist, entity.RoleBilling)(next)
}

// RequireClinical admits every role that works with appointments.
func RequireClinical(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse, entity.RoleDoctor)(next)
}
