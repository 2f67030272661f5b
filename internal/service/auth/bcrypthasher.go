package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

// Default hasher for passwords and refresh tokens
// The sha256 step lifts bcrypt's 72 byte input limit, which matters for
// refresh tokens: a signed JWT is far longer than that
type BcryptHasher struct{}

func (h BcryptHasher) Hash(value string) (string, error) {
	sum := sha256.Sum256([]byte(value))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	return string(hash), err
}

func (h BcryptHasher) Compare(hashed string, value string) error {
	sum := sha256.Sum256([]byte(value))
	return bcrypt.CompareHashAndPassword([]byte(hashed), sum[:])
}
