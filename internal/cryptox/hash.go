package cryptox

import (
	"github.com/avolkov/passvault/internal/vaulterr"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

// HashSecret hashes a login password or vault key with bcrypt at the default
// cost. A failure of the primitive itself surfaces as an Internal-kind error.
func HashSecret(secret string) (string, error) {
	return HashSecretCost(secret, DefaultHashCost)
}

// HashSecretCost is HashSecret with an explicit work factor.
func HashSecretCost(secret string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", vaulterr.Internal("hashing failed", err)
	}
	return string(hash), nil
}

// VerifySecret reports whether secret matches the stored bcrypt hash.
// A mismatch is an ordinary false, not an error.
func VerifySecret(secret string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
