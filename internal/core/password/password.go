// Package password wraps bcrypt behind a small hasher type so the cost
// factor is injected once at startup instead of being repeated at call sites.
package password

import "golang.org/x/crypto/bcrypt"

const defaultCost = 12

// Hasher produces and verifies salted one-way password digests.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// bcrypt-supported range fall back to the default work factor.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a bcrypt digest of password. Each call embeds a fresh random
// salt, so hashing the same password twice yields different strings.
func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether password matches hash. It never returns an error:
// malformed or foreign hash formats, empty passwords and plain mismatches all
// yield false.
func (h *Hasher) Verify(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
