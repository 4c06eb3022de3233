package auth

import "golang.org/x/crypto/bcrypt"

// VerifyResult is the outcome of a password check.
type VerifyResult int

const (
	// VerifyFailed means the password does not match (or the stored hash is
	// not a valid bcrypt hash at all).
	VerifyFailed VerifyResult = iota
	// VerifySuccess means the password matches the stored hash.
	VerifySuccess
	// VerifySuccessRehashNeeded means the password matches but the hash was
	// produced with a lower cost than currently configured and should be
	// recomputed on the next write opportunity.
	VerifySuccessRehashNeeded
)

// PasswordHasher hashes and verifies passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs outside
// the valid bcrypt range fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of the given plain-text password.
func (h *PasswordHasher) Hash(plainPassword string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plainPassword), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify checks plainPassword against hash. It never returns an error:
// malformed or garbage hashes simply fail verification.
func (h *PasswordHasher) Verify(hash, plainPassword string) VerifyResult {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plainPassword)); err != nil {
		return VerifyFailed
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err == nil && cost < h.cost {
		return VerifySuccessRehashNeeded
	}
	return VerifySuccess
}
