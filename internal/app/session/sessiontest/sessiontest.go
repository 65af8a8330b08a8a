// Package sessiontest mints access tokens shaped like the backend's for tests.
package sessiontest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

const signingKey = "sessiontest-signing-key"

// Token signs a token carrying the given identity, valid for an hour.
func Token(t testing.TB, id, email, fullName string, role models.Role) string {
	t.Helper()
	now := time.Now()
	return Sign(t, jwt.MapClaims{
		"sub":       id,
		"email":     email,
		"full_name": fullName,
		"role":      string(role),
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	})
}

// Sign signs arbitrary claims with HS256.
func Sign(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
