package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

// RBAC enforces role-based access control on top of a resolved identity.
// It assumes Auth or RemoteAuth already ran; an unknown role is rejected
// like any disallowed one.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAdmin gates an endpoint to admins only.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}
