package identity

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"boardhub.org/internal/apperr"
)

const specialRunes = `!@#$%^&*(),.?":{}|<>`

// HashSecret hashes a plaintext secret using bcrypt.
func HashSecret(secret string) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("secret is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifySecret compares a plaintext secret with a stored hash.
func VerifySecret(hash, secret string) error {
	if hash == "" {
		return errors.New("secret hash is empty")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
}

// ValidateSecret enforces the registration policy: 8-64 characters with at
// least one upper-case letter, one lower-case letter, one digit and one
// special character. Login never applies this; a wrong secret there is an
// authentication failure, not a validation failure.
func ValidateSecret(secret string) error {
	if len(secret) < 8 {
		return apperr.Validation("secret must be at least 8 characters long")
	}
	if len(secret) > 64 {
		return apperr.Validation("secret must be at most 64 characters long")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range secret {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialRunes, r):
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return apperr.Validation("secret must contain upper and lower case letters, a digit and a special character")
	}
	return nil
}
