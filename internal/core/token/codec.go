// Package token implements the signed credential exchanged between clients
// and services: HS256-signed claims with a bounded lifetime.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// Claims is the structured payload carried by a token.
type Claims struct {
	UserID   int64
	Username string
	Role     string
	IssuedAt int64
	Expiry   int64
}

// Codec issues and verifies tokens with a shared symmetric secret. It is
// stateless and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for user valid for the codec's TTL.
func (c *Codec) Issue(user *domain.User) (string, error) {
	return c.IssueWithTTL(user, c.ttl)
}

// IssueWithTTL signs a token with an explicit lifetime.
func (c *Codec) IssueWithTTL(user *domain.User, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and expiry of raw and returns its claims.
// All rejections map to ErrTokenExpired or ErrInvalidToken; the distinction
// is for logging only; callers must reject both the same way. A token whose
// payload lacks a user identifier or an expiry is treated as invalid.
func (c *Codec) Decode(raw string) (*Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims := &Claims{
		UserID:   claimInt(mc, "user_id"),
		Username: claimString(mc, "username"),
		Role:     claimString(mc, "role"),
		IssuedAt: claimInt(mc, "iat"),
		Expiry:   claimInt(mc, "exp"),
	}
	if claims.UserID == 0 {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearer returns the token from an Authorization header value. The
// header must be exactly two space-delimited parts with a case-insensitive
// "Bearer" scheme; anything else (extra whitespace, bare scheme, another
// scheme) yields ok=false.
func ExtractBearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// claimInt reads a numeric claim; JSON round-tripping turns numbers into
// float64, but freshly issued MapClaims still hold int64.
func claimInt(mc jwt.MapClaims, key string) int64 {
	switch v := mc[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func claimString(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return s
}
