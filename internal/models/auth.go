package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest holds the registration form payload. Course is required
// for student and coordinator roles, checked in the service.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	Course   string `json:"course"`
}

// LoginRequest holds credentials for authenticating a subject.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and subject info.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	Subject     SubjectInfo `json:"subject"`
	IssuedAt    time.Time   `json:"issued_at"`
}

// SubjectInfo describes the authenticated subject in responses.
type SubjectInfo struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   SubjectRole `json:"role"`
	Course string      `json:"course,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	SubjectID string      `json:"subject_id"`
	Role      SubjectRole `json:"role"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Course    string      `json:"course,omitempty"`
	jwt.RegisteredClaims
}
