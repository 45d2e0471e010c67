package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost the original deployment used.
const DefaultBcryptCost = 10

// Hasher hashes and verifies passwords with bcrypt. The work factor
// is tunable; higher costs slow brute-forcing at the price of login
// latency.
type Hasher struct {
	cost int
}

// NewHasher creates a bcrypt hasher with the given cost. Costs
// outside bcrypt's supported range fall back to the default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a bcrypt digest from a clear-text password.
func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("generating bcrypt hash: %w", err)
	}
	return string(digest), nil
}

// Compare reports whether the password matches the stored digest.
func (h *Hasher) Compare(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
