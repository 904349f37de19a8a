package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: 42, Username: "alice", Role: domain.RoleAdmin}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	raw, err := c.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := c.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user_id: expected 42, got %d", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Fatalf("username: expected alice, got %q", claims.Username)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("role: expected admin, got %q", claims.Role)
	}
	if claims.IssuedAt == 0 || claims.Expiry == 0 {
		t.Fatalf("timing claims missing: iat=%d exp=%d", claims.IssuedAt, claims.Expiry)
	}
	if claims.Expiry <= claims.IssuedAt {
		t.Fatalf("expiry %d not after issued-at %d", claims.Expiry, claims.IssuedAt)
	}
}

func TestCodec_ExpiredToken(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	raw, err := c.IssueWithTTL(testUser(), -time.Second)
	if err != nil {
		t.Fatalf("IssueWithTTL: %v", err)
	}

	if _, err := c.Decode(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_TamperedToken(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	raw, err := c.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one byte near the end (inside the signature).
	b := []byte(raw)
	i := len(b) - 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if _, err := c.Decode(string(b)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	raw, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Decode(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_MalformedToken(t *testing.T) {
	c := NewCodec("secret", time.Hour)
	if _, err := c.Decode("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_MissingUserID(t *testing.T) {
	// Well-signed but structurally incomplete: no user_id claim.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "ghost",
		"role":     domain.RoleEmployee,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c := NewCodec("secret", time.Hour)
	if _, err := c.Decode(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_MissingExpiry(t *testing.T) {
	// Well-signed but unbounded: no exp claim. Must not be accepted as a
	// token that never expires.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  int64(42),
		"username": "alice",
		"role":     domain.RoleAdmin,
		"iat":      time.Now().Unix(),
	})
	raw, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c := NewCodec("secret", time.Hour)
	if _, err := c.Decode(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_RejectsNonHS256(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": int64(1),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c := NewCodec("secret", time.Hour)
	if _, err := c.Decode(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"standard", "Bearer abc123", "abc123", true},
		{"lowercase scheme", "bearer abc123", "abc123", true},
		{"mixed case scheme", "BeArEr abc123", "abc123", true},
		{"empty header", "", "", false},
		{"bare scheme", "Bearer", "", false},
		{"trailing space only", "Bearer ", "", false},
		{"double space", "Bearer  abc123", "", false},
		{"wrong scheme", "Token abc123", "", false},
		{"three parts", "Bearer abc 123", "", false},
	}

	for _, tc := range cases {
		tok, ok := ExtractBearer(tc.header)
		if ok != tc.ok || tok != tc.token {
			t.Fatalf("%s: ExtractBearer(%q) = (%q, %v), expected (%q, %v)",
				tc.name, tc.header, tok, ok, tc.token, tc.ok)
		}
	}
}
