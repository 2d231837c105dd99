package vault

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredential is returned when the internal credential check fails
var ErrInvalidCredential = errors.New("invalid internal credential")

// Checker verifies the capability token that gates internal entry points.
// Only the bcrypt hash of the shared secret is held in memory.
type Checker struct {
	hash string
}

// NewChecker creates a checker from the bcrypt hash of the shared secret.
// An empty hash rejects every credential.
func NewChecker(bcryptHash string) *Checker {
	return &Checker{hash: bcryptHash}
}

// Verify checks a presented credential against the configured hash
func (c *Checker) Verify(credential string) error {
	if c.hash == "" || credential == "" {
		return ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(credential)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

// HashSecret derives the stored form of an internal shared secret
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
