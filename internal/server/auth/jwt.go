// Package auth issues and verifies the HS256 login tokens that carry the
// authenticated principal's user id.
package auth

import (
	"time"

	"github.com/avolkov/passvault/internal/vaulterr"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken mints a signed token for userID valid for validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", vaulterr.Internal("token signing failed", err)
	}

	return tokenString, nil
}

// GetUserIDFromToken parses and validates a token and returns the user id.
// Expired, malformed, or mis-signed tokens are unauthorized.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", vaulterr.Unauthorized("invalid token")
	}

	if !token.Valid || claims.UserID == "" {
		return "", vaulterr.Unauthorized("invalid token")
	}

	return claims.UserID, nil
}
