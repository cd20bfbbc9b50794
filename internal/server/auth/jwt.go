// Package auth signs and verifies the session cookie payload. The cookie
// carries only the numeric user id; the HS256 signature makes it
// tamper-evident. What the id means is decided by the directory, not here.
package auth

import (
	"time"

	"github.com/dmitrijs2005/chronofeed/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims adds the session's user id to the registered JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"uid"`
}

// GenerateToken mints a signed session token for the given user id.
func GenerateToken(userID uint64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// UserIDFromToken verifies the signature and expiry and extracts the user
// id. Any parse or validation failure yields common.ErrInvalidToken; the
// transport treats that as "no session", not as an error.
func UserIDFromToken(tokenString string, secretKey []byte) (uint64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
