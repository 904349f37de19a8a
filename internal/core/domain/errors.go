package domain

import "errors"

// Stable machine-readable error codes surfaced in the API error envelope.
const (
	CodeInvalidCredentials = "AUTH001"
	CodeAccountDisabled    = "AUTH002"
	CodeInvalidToken       = "AUTH003"
	CodeMissingToken       = "AUTH004"
	CodeForbidden          = "AUTH005"
	CodeAuthUnavailable    = "AUTH006"
	CodeUserExists         = "USER001"
	CodeProductNotFound    = "PRODUCT001"
)

var (
	// ErrInvalidCredentials is deliberately generic: it covers both the
	// unknown-username and wrong-password cases so responses cannot be used
	// for username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUsername    = errors.New("username must be 3-50 characters of letters, digits or underscore")
	ErrWeakPassword       = errors.New("password does not meet the strength policy")

	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired exists so rejections can be logged with their real
	// cause; callers must treat it exactly like ErrInvalidToken.
	ErrTokenExpired = errors.New("token expired")

	ErrForbidden       = errors.New("insufficient permission")
	ErrAuthUnavailable = errors.New("authentication service unavailable")

	ErrProductNotFound = errors.New("product not found")
)

// ErrorCode maps a domain error to its stable code, or "" for errors that
// have no client-facing code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrAccountDisabled):
		return CodeAccountDisabled
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrUserNotFound):
		// A well-signed token referencing a deleted user is the same failure
		// class as a forged token.
		return CodeInvalidToken
	case errors.Is(err, ErrMissingToken):
		return CodeMissingToken
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrAuthUnavailable):
		return CodeAuthUnavailable
	case errors.Is(err, ErrUserExists):
		return CodeUserExists
	case errors.Is(err, ErrProductNotFound):
		return CodeProductNotFound
	}
	return ""
}
