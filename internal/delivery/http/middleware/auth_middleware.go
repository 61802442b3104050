package middleware

import (
	"context"
	"net/http"
	"strings"

	"medicore/internal/domain/entity"
	"medicore/pkg/jwt"
	"medicore/pkg/response"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated staff account behind a request.
type Principal struct {
	UserID    string
	Username  string
	Role      entity.Role
	RelatedID string
	TokenID   string
}

// IsDoctor reports whether the principal is a doctor account bound to a
// doctor record; such accounts only see their own appointments.
func (p Principal) IsDoctor() bool {
	return p.Role == entity.RoleDoctor && p.RelatedID != ""
}

type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		role, err := entity.ParseRole(claims.Role)
		if err != nil {
			response.Unauthorized(w, "Invalid token role")
			return
		}

		ctx := WithPrincipal(r.Context(), Principal{
			UserID:    claims.UserID,
			Username:  claims.Username,
			Role:      role,
			RelatedID: claims.RelatedID,
			TokenID:   claims.TokenID,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithPrincipal attaches p to ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext extracts the authenticated account from context
func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	p, ok := GetPrincipalFromContext(ctx)
	return p.UserID, ok
}

// GetRoleFromContext extracts the role from context
func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	p, ok := GetPrincipalFromContext(ctx)
	return p.Role, ok
}
