package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/api/middleware"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

// currentUser extracts the user resolved by the Auth middleware. Its absence
// means the route was registered without the guard; treat that as a missing
// credential rather than panicking.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, domain.ErrMissingToken
	}
	return user, nil
}
