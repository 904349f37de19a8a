package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/api/handler"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. ErrorCode
// is the stable machine-readable code clients should branch on.
type errorResponse struct {
	ErrorCode string   `json:"error_code,omitempty"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their status codes and stable error codes.
//   - Renders validation failures with field-level detail.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Request shape failures from the validator adapter.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{
			ErrorCode: "VALIDATION",
			Message:   "request validation failed",
			Fields:    ve.Fields,
		}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes. Credential mismatches
	// stay generic; disabled-account and missing-token may be specific since
	// they leak nothing about password correctness.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, coded(err)
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusUnauthorized, coded(err)
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, errorResponse{ErrorCode: domain.CodeInvalidToken, Message: "invalid token"}
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, coded(err)
	case errors.Is(err, domain.ErrAuthUnavailable):
		return http.StatusUnauthorized, coded(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, coded(err)
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, coded(err)
	case errors.Is(err, domain.ErrInvalidUsername), errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, errorResponse{ErrorCode: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, coded(err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "internal server error"}
}

func coded(err error) errorResponse {
	return errorResponse{ErrorCode: domain.ErrorCode(err), Message: err.Error()}
}
