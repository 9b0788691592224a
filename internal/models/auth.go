package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account maps sign-in credentials to a student document.
type Account struct {
	ID           string `json:"-"`
	Email        string `json:"email"`
	StudentID    string `json:"studentId"`
	PasswordHash string `json:"passwordHash"`
	Active       bool   `json:"active"`
}

// LoginRequest holds credentials for authenticating a student.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	StudentID   string    `json:"student_id"`
	IssuedAt    time.Time `json:"issued_at"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the explicit "current user" passed into every view.
// Resolved is false until authentication has completed.
type Identity struct {
	StudentID string
	Resolved  bool
}

// IdentityFromClaims resolves an identity from validated token claims.
func IdentityFromClaims(claims *JWTClaims) Identity {
	if claims == nil || claims.StudentID == "" {
		return Identity{}
	}
	return Identity{StudentID: claims.StudentID, Resolved: true}
}
