package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/token"
)

// TokenVerifier forwards a bearer token to the auth service and reports the
// verdict. A transport failure must surface as an error, never as a valid
// result.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*ports.VerifyResult, error)
}

// RemoteAuth is the cross-service guard used by services that hold neither
// the signing secret nor the user table. The returned role claim is trusted
// for this request only; nothing is cached. All failure modes fail closed,
// including an unreachable auth service.
func RemoteAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := token.ExtractBearer(header)
			if !ok {
				return domain.ErrMissingToken
			}

			result, err := verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				return domain.ErrAuthUnavailable
			}
			if !result.Valid {
				return domain.ErrInvalidToken
			}

			c.Set(CtxUserID, result.UserID)
			c.Set(CtxUsername, result.Username)
			c.Set(CtxRole, result.Role)

			return next(c)
		}
	}
}
