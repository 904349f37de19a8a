package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/password"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/token"
)

type stubAuthRepo struct {
	users  map[string]*domain.User // keyed by lowercase username
	nextID int64
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	key := strings.ToLower(user.Username)
	if _, exists := r.users[key]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = r.nextID
	r.users[key] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[strings.ToLower(username)]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubAudit struct {
	attempts []ports.LoginAttempt
}

func (a *stubAudit) RecordLoginAttempt(_ context.Context, attempt ports.LoginAttempt) error {
	a.attempts = append(a.attempts, attempt)
	return nil
}

func newTestService(repo *stubAuthRepo, audit ports.AuditRecorder) *AuthService {
	return NewAuthService(
		repo,
		password.NewHasher(bcrypt.MinCost),
		token.NewCodec("secret", time.Hour),
		PasswordPolicy{MinLength: 8, RequireComplexity: true},
		audit,
		zerolog.Nop(),
	)
}

func TestAuthService_Register_FirstUserIsAdmin(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), nil)

	first, err := svc.Register(context.Background(), "alice", "Passw0rd")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if first.Role != domain.RoleAdmin {
		t.Fatalf("first user role: expected admin, got %s", first.Role)
	}
	if first.PointsBalance != 0 {
		t.Fatalf("expected zero balance, got %d", first.PointsBalance)
	}
	if !first.IsActive {
		t.Fatalf("expected new user active")
	}

	second, err := svc.Register(context.Background(), "bob", "Passw0rd")
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if second.Role != domain.RoleEmployee {
		t.Fatalf("second user role: expected employee, got %s", second.Role)
	}
}

func TestAuthService_Register_ConcurrentFirstRegistrations(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(repo, nil)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), fmt.Sprintf("user_%02d", i), "Passw0rd")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}
	if len(repo.users) != n {
		t.Fatalf("expected %d users, got %d", n, len(repo.users))
	}

	admins := 0
	for _, u := range repo.users {
		if u.Role == domain.RoleAdmin {
			admins++
		}
	}
	if admins != 1 {
		t.Fatalf("expected exactly one admin, got %d", admins)
	}
}

func TestAuthService_Register_CaseInsensitiveDuplicate(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), nil)

	if _, err := svc.Register(context.Background(), "Alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_UsernameValidation(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), nil)

	for _, username := range []string{"ab", "has space", "sem;colon", strings.Repeat("x", 51), ""} {
		if _, err := svc.Register(context.Background(), username, "Passw0rd"); !errors.Is(err, domain.ErrInvalidUsername) {
			t.Fatalf("username %q: expected ErrInvalidUsername, got %v", username, err)
		}
	}
}

func TestAuthService_Register_PasswordPolicy(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), nil)

	for _, pw := range []string{"Sh0rt", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		if _, err := svc.Register(context.Background(), "carol", pw); !errors.Is(err, domain.ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", pw, err)
		}
	}
}

func TestAuthService_Register_NeverStoresPlaintext(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), "dave", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	stored := repo.users["dave"]
	if stored.PasswordHash == "Passw0rd" || stored.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", stored.PasswordHash)
	}
}

func TestAuthService_Login_Success_CaseInsensitiveUsername(t *testing.T) {
	audit := &stubAudit{}
	svc := newTestService(newStubAuthRepo(), audit)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	tok, user, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "ALICE", Password: "Passw0rd", ClientIP: "10.0.0.1", UserAgent: "test-agent",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token")
	}
	if user.Username != "alice" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := token.NewCodec("secret", time.Hour).Decode(tok)
	if err != nil {
		t.Fatalf("decode issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if len(audit.attempts) != 1 || !audit.attempts[0].Success {
		t.Fatalf("expected one successful audit event, got %+v", audit.attempts)
	}
	if audit.attempts[0].ClientIP != "10.0.0.1" || audit.attempts[0].UserAgent != "test-agent" {
		t.Fatalf("audit metadata missing: %+v", audit.attempts[0])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	audit := &stubAudit{}
	svc := newTestService(newStubAuthRepo(), audit)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(audit.attempts) != 1 || audit.attempts[0].Success || audit.attempts[0].Reason != "wrong_password" {
		t.Fatalf("unexpected audit: %+v", audit.attempts)
	}
}

func TestAuthService_Login_UnknownUsernameIsGeneric(t *testing.T) {
	audit := &stubAudit{}
	svc := newTestService(newStubAuthRepo(), audit)

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "ghost", Password: "whatever"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// The audit trail keeps the real cause even though the response is generic.
	if len(audit.attempts) != 1 || audit.attempts[0].Reason != "unknown_username" {
		t.Fatalf("unexpected audit: %+v", audit.attempts)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.users["alice"].IsActive = false

	_, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "Passw0rd"})
	if !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, user, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resolved, err := svc.Authenticate(context.Background(), tok)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("resolved wrong user: %+v", resolved)
	}

	if _, err := svc.Authenticate(context.Background(), tok+"x"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("tampered token: expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedUserSameAsForged(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	delete(repo.users, "alice")

	if _, err := svc.Authenticate(context.Background(), tok); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Authenticate_DisabledAccount(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	repo.users["alice"].IsActive = false

	if _, err := svc.Authenticate(context.Background(), tok); !errors.Is(err, domain.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestAuthService_Verify(t *testing.T) {
	svc := newTestService(newStubAuthRepo(), nil)

	if _, err := svc.Register(context.Background(), "alice", "Passw0rd"); err != nil {
		t.Fatalf("register: %v", err)
	}
	tok, user, err := svc.Login(context.Background(), ports.LoginInput{Username: "alice", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	result := svc.Verify(context.Background(), tok)
	if !result.Valid || result.UserID != user.ID || result.Role != domain.RoleAdmin {
		t.Fatalf("unexpected verify result: %+v", result)
	}

	result = svc.Verify(context.Background(), "garbage")
	if result.Valid || result.Error == "" {
		t.Fatalf("expected invalid soft result, got %+v", result)
	}
	if result.UserID != 0 || result.Role != "" {
		t.Fatalf("invalid result leaked identity: %+v", result)
	}
}
