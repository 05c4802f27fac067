package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userhub/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives and verifies bcrypt credentials. The cost factor is
// the deliberate work factor against brute force; the salt is embedded in the
// credential by bcrypt itself. Safe for concurrent use.
type PasswordHasher struct {
	cost      int
	minLength int
}

// NewPasswordHasher constructs a hasher with the given bcrypt cost and
// minimum plaintext length. An out-of-range cost falls back to the bcrypt
// default.
func NewPasswordHasher(cost int, minLength int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost, minLength: minLength}
}

// Hash derives a one-way credential from the plaintext. Plaintexts shorter
// than the configured minimum yield common.ErrPasswordTooShort.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) < h.minLength {
		return "", common.ErrPasswordTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(b), nil
}

// Check verifies the plaintext against a stored credential. A mismatch is a
// normal false result; common.ErrCorruptCredential is returned only when the
// stored credential itself cannot be parsed. The comparison inside bcrypt is
// constant-time.
func (h *PasswordHasher) Check(plaintext, credential string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, common.ErrCorruptCredential
	}
}
