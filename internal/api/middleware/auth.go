package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/token"
)

// Context keys set by the auth middlewares.
const (
	CtxUser     = "user"
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// Auth is the same-service authorization guard: it extracts the bearer
// token, resolves it to an active user through the auth service, and injects
// the user into the request context. Rejections surface as domain errors for
// the central error handler to translate.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := token.ExtractBearer(header)
			if !ok {
				return domain.ErrMissingToken
			}

			user, err := auth.Authenticate(c.Request().Context(), raw)
			if err != nil {
				return err
			}

			c.Set(CtxUser, user)
			c.Set(CtxUserID, user.ID)
			c.Set(CtxUsername, user.Username)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}
