package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetTokenTTL is how long a password-reset link stays valid.
const ResetTokenTTL = 1800 * time.Second

// ErrBadToken covers every way a reset token can fail verification:
// tampered, expired, malformed, or signed with another key. Callers get
// one uniform rejection.
var ErrBadToken = errors.New("invalid or expired reset token")

// NewResetToken issues a signed token binding userID, expiring after
// ResetTokenTTL.
func NewResetToken(secret []byte, userID int64, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ResetTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyResetToken checks the signature and expiry and returns the bound
// user id. Any failure yields ErrBadToken.
func VerifyResetToken(secret []byte, token string) (int64, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0, ErrBadToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrBadToken
	}
	return userID, nil
}
