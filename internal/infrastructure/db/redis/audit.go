package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
)

const (
	auditStream = "audit:logins"

	// Streams are capped so an attacker hammering the login endpoint
	// cannot grow Redis without bound.
	auditMaxLen = 100000
)

// AuditRecorder appends login attempts to a capped Redis stream. Entries are
// consumed out of band by whatever tooling inspects authentication activity.
type AuditRecorder struct {
	client *redis.Client
}

func NewAuditRecorder(client *redis.Client) *AuditRecorder {
	return &AuditRecorder{client: client}
}

func (r *AuditRecorder) RecordLoginAttempt(ctx context.Context, attempt ports.LoginAttempt) error {
	ts := attempt.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: auditStream,
		MaxLen: auditMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"timestamp":  ts.Format(time.RFC3339),
			"username":   attempt.Username,
			"client_ip":  attempt.ClientIP,
			"user_agent": attempt.UserAgent,
			"success":    strconv.FormatBool(attempt.Success),
			"reason":     attempt.Reason,
		},
	}).Err()
}
