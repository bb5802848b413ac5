package utils

import (
	"errors"
	"time"

	"konnadex/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "konnadex-gateway"

var (
	ErrSecretNotConfigured = errors.New("JWT_SECRET not configured")
	ErrInvalidToken        = errors.New("invalid token")
)

// GenerateToken issues a bearer token naming accountID as the caller.
func GenerateToken(accountID, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrSecretNotConfigured
	}

	now := time.Now()
	claims := models.CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   accountID,
		},
		AccountID: accountID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken parses and validates a bearer token and returns its claims.
func ParseToken(tokenStr, secret string) (*models.CallerClaims, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.CallerClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.CallerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.AccountID == "" || claims.AccountID != claims.Subject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
