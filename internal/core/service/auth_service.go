package service

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/password"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/token"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

// PasswordPolicy is the configuration-driven strength check applied before
// hashing. With RequireComplexity set, a password needs at least one upper
// case letter, one lower case letter and one digit.
type PasswordPolicy struct {
	MinLength         int
	RequireComplexity bool
}

func (p PasswordPolicy) Check(pw string) error {
	minLen := p.MinLength
	if minLen <= 0 {
		minLen = 8
	}
	if len(pw) < minLen {
		return domain.ErrWeakPassword
	}
	if !p.RequireComplexity {
		return nil
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return domain.ErrWeakPassword
	}
	return nil
}

// AuthService implements registration, login and token-based user resolution.
type AuthService struct {
	repo   ports.AuthRepository
	hasher *password.Hasher
	codec  *token.Codec
	policy PasswordPolicy
	audit  ports.AuditRecorder
	log    zerolog.Logger

	// registerMu serializes count-then-insert so two concurrent first
	// registrations cannot both become admin. The unique index on the
	// lowercased username remains the cross-process backstop.
	registerMu sync.Mutex
}

func NewAuthService(
	repo ports.AuthRepository,
	hasher *password.Hasher,
	codec *token.Codec,
	policy PasswordPolicy,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		codec:  codec,
		policy: policy,
		audit:  audit,
		log:    log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, pw string) (*domain.User, error) {
	if !usernamePattern.MatchString(username) {
		return nil, domain.ErrInvalidUsername
	}
	if err := s.policy.Check(pw); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, err
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := domain.RoleEmployee
	if count == 0 {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:      username,
		PasswordHash:  hash,
		Role:          role,
		PointsBalance: 0,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Str("role", created.Role).
		Msg("user registered")

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordAttempt(ctx, input, false, "unknown_username")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.IsActive {
		s.recordAttempt(ctx, input, false, "account_disabled")
		return "", nil, domain.ErrAccountDisabled
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		s.recordAttempt(ctx, input, false, "wrong_password")
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.codec.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.recordAttempt(ctx, input, true, "")
	return tok, user, nil
}

// Authenticate resolves a raw bearer token to an active user. A well-signed
// token whose user no longer exists is rejected the same way as a forged
// one; the real cause is logged but never surfaced.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := s.codec.Decode(rawToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Int64("user_id", claims.UserID).Msg("token references unknown user")
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) Verify(ctx context.Context, rawToken string) *ports.VerifyResult {
	user, err := s.Authenticate(ctx, rawToken)
	if err != nil {
		return &ports.VerifyResult{Valid: false, Error: "invalid or expired token"}
	}
	return &ports.VerifyResult{
		Valid:    true,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// recordAttempt writes the audit event for a login attempt. Audit failures
// are logged and swallowed; they must not affect the login outcome.
func (s *AuthService) recordAttempt(ctx context.Context, input ports.LoginInput, success bool, reason string) {
	event := s.log.Info()
	if !success {
		event = s.log.Warn()
	}
	event.
		Str("event", "login_attempt").
		Str("username", input.Username).
		Str("ip", input.ClientIP).
		Str("user_agent", input.UserAgent).
		Bool("success", success).
		Str("reason", reason).
		Msg("login attempt")

	if s.audit == nil {
		return
	}
	attempt := ports.LoginAttempt{
		Timestamp: time.Now().UTC(),
		Username:  input.Username,
		ClientIP:  input.ClientIP,
		UserAgent: input.UserAgent,
		Success:   success,
		Reason:    reason,
	}
	if err := s.audit.RecordLoginAttempt(ctx, attempt); err != nil {
		s.log.Warn().Err(err).Msg("audit record failed")
	}
}
