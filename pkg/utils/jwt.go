package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret   string
	tokenExpiry time.Duration
)

// InitJWT initializes the JWT secret and expiry time
func InitJWT(secret string, expiry time.Duration) {
	jwtSecret = secret
	tokenExpiry = expiry
}

// GenerateToken mints a token for the given caller principal. The server only
// uses this for seeding and tests; real tokens come from the identity provider
// sharing the same secret.
func GenerateToken(principal string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   principal,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateToken validates a bearer token and returns the caller principal.
func ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}

	return claims.Subject, nil
}
