package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPINHasher hashes family PINs with bcrypt.
type BcryptPINHasher struct {
	cost int
}

func NewBcryptPINHasher(cost int) *BcryptPINHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPINHasher{cost: cost}
}

func (h *BcryptPINHasher) Hash(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate pin hash: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether pin matches pinHash. All failure causes look
// the same to the caller, so a malformed hash cannot be distinguished
// from a wrong PIN.
func (h *BcryptPINHasher) Compare(pinHash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) == nil
}
