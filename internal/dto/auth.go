package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the custom claims of an access token.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
