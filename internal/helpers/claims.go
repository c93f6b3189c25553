package helpers

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of the bearer token handed out at signin.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
