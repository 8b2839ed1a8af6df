package auth

import "github.com/golang-jwt/jwt/v5"

const TokenTypeAccess = "access"

// Claims are the only supported JWT claims shape for this service. Tokens are
// issued solely in exchange for the shared API key, so they carry no user
// identity beyond the token type marker.
type Claims struct {
	jwt.RegisteredClaims

	TokenType string `json:"token_type"`
}
