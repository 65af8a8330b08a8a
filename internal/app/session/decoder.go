package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

// Claims is the identity payload the backend signs into the access token.
type Claims struct {
	Email    string      `json:"email,omitempty"`
	FullName string      `json:"full_name,omitempty"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Decode reads the session out of a token without verifying its signature
// or expiry. The backend re-authorizes every call, so the result only drives
// navigation and display. Any malformed token, missing subject or unknown
// role yields nil.
func Decode(token string) *models.Session {
	if token == "" {
		return nil
	}

	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil
	}

	s := &models.Session{
		ID:       claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		s.ExpiresAt = &exp
	}
	return s
}
