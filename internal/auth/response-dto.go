package auth

import "github.com/golang-jwt/jwt/v4"

// represents the admin login response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	ExpiresIn   int64  `json:"expires_in"`
}

// JWTClaims represents JWT token claims
type JWTClaims struct {
	Role string `json:"role"`
	Type string `json:"type"` // always "access"
	jwt.RegisteredClaims
}
