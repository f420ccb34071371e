package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ResetTokenValidity is how long a password reset link stays usable.
const ResetTokenValidity = time.Hour

type resetClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GeneratePasswordResetToken issues a short-lived token tied to the user's
// email. The token doubles as the reset link parameter and as the lookup key
// stored on the user row.
func GeneratePasswordResetToken(email string, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not configured")
	}

	claims := resetClaims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ResetTokenValidity).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyResetToken checks signature and expiry and returns the email the
// token was issued for.
func VerifyResetToken(tokenString string, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &resetClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*resetClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return "", errors.New("token has expired")
	}
	return claims.Email, nil
}

// HashPassword hashes the provided password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
