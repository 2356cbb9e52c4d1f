package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashClientSecret will generate a secret hash
func HashClientSecret(secret string) (string, error) {
	if secret == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(secret), 14)
	return string(h), err
}

// CompareSecretAndHash will validate the given cleartext
// secret matches the hashed secret
func CompareSecretAndHash(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
