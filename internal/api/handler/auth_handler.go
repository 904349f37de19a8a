package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/api/metrics"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/token"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// registerRequest leaves password strength to the configured policy in the
// auth service; the handler only requires the field to be present.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string             `json:"token,omitempty"`
	User  *domain.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		ClientIP:  c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	tok, user, err := h.authService.Login(c.Request().Context(), input)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: tok, User: user.Public()})
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user.Public()})
}

// Me returns the authenticated caller's own public projection.
//
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.PublicUser
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Public())
}

// Logout acknowledges a logout. There is no server-side token blacklist;
// the client discards its token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}

// Verify is the service-to-service token verification endpoint. It always
// answers 200; the "valid" field carries the real signal so internal callers
// don't need error handling for the common invalid case.
//
// @Summary      Verify a bearer token (internal)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.VerifyResult
// @Router       /api/auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, ok := token.ExtractBearer(header)
	if !ok {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusOK, &ports.VerifyResult{Valid: false, Error: "invalid or expired token"})
	}

	result := h.authService.Verify(c.Request().Context(), raw)
	if result.Valid {
		metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	} else {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
	}
	return c.JSON(http.StatusOK, result)
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "account_disabled"
	}
	return "error"
}
