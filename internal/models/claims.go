package models

import "github.com/golang-jwt/jwt/v5"

// CallerClaims identifies the account invoking a gateway call.
type CallerClaims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
}
