package challenge

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Answers are stored hashed; the clear text never leaves the setup flow.
// Case and surrounding whitespace are normalized before hashing so trivially
// different renderings of the same answer still verify.

// HashAnswer creates a bcrypt hash of a normalized answer.
func HashAnswer(answer string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(answer)), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("answer exceeds maximum length")
		}
		return "", fmt.Errorf("hash answer: %w", err)
	}
	return string(hashed), nil
}

// VerifyAnswer checks a clear-text answer against a stored hash.
func VerifyAnswer(answer, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(normalizeAnswer(answer))) == nil
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
