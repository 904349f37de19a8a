package ports

import (
	"context"
	"time"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

// LoginInput carries the credentials plus the client metadata recorded in
// the audit trail.
type LoginInput struct {
	Username  string
	Password  string
	ClientIP  string
	UserAgent string
}

// VerifyResult is the soft-contract outcome of token verification: the
// endpoint always answers 200 and Valid carries the real signal.
type VerifyResult struct {
	Valid    bool   `json:"valid"`
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Error    string `json:"error,omitempty"`
}

type AuthService interface {
	// Register creates a user. The first user ever registered becomes admin;
	// everyone after that is an employee.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login checks credentials and returns a signed token plus the user.
	Login(ctx context.Context, input LoginInput) (string, *domain.User, error)
	// Authenticate resolves a raw bearer token to an active user.
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
	// Verify is Authenticate with a soft result, for service-to-service calls.
	Verify(ctx context.Context, rawToken string) *VerifyResult
}

// LoginAttempt is the structured audit event recorded for every login,
// successful or not. Reason is empty on success.
type LoginAttempt struct {
	Timestamp time.Time
	Username  string
	ClientIP  string
	UserAgent string
	Success   bool
	Reason    string
}

// AuditRecorder persists login attempts for later intrusion-detection
// tooling. Recording is best-effort; failures must not block authentication.
type AuditRecorder interface {
	RecordLoginAttempt(ctx context.Context, attempt LoginAttempt) error
}
