package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the authenticated actor attached to every request. Core
// operations only read UserID from it; the rest exists for token plumbing.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion int    `json:"token_version"`
}
