package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
	"github.com/FACorreiaa/go-lmsportal/internal/app/session/sessiontest"
)

func TestDecode_RoundTrip(t *testing.T) {
	for _, role := range models.Roles {
		t.Run(string(role), func(t *testing.T) {
			token := sessiontest.Token(t, "u-42", "ana@uni.edu", "Ana Silva", role)

			s := Decode(token)
			require.NotNil(t, s)
			assert.Equal(t, "u-42", s.ID)
			assert.Equal(t, "ana@uni.edu", s.Email)
			assert.Equal(t, "Ana Silva", s.FullName)
			assert.Equal(t, role, s.Role)
			require.NotNil(t, s.ExpiresAt)
			assert.True(t, s.ExpiresAt.After(time.Now()))
		})
	}
}

func TestDecode_OptionalClaims(t *testing.T) {
	token := sessiontest.Sign(t, jwt.MapClaims{"sub": "u1", "role": "student"})

	s := Decode(token)
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.ID)
	assert.Empty(t, s.Email)
	assert.Empty(t, s.FullName)
	assert.Nil(t, s.ExpiresAt)
}

func TestDecode_ExpiredTokenStillDecodes(t *testing.T) {
	token := sessiontest.Sign(t, jwt.MapClaims{
		"sub":  "u1",
		"role": "admin",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	s := Decode(token)
	require.NotNil(t, s)
	require.NotNil(t, s.ExpiresAt)
	assert.True(t, s.ExpiresAt.Before(time.Now()))
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "abc.def"},
		{"bad base64 payload", "eyJhbGciOiJIUzI1NiJ9.!!!.sig"},
		{"missing subject", sessiontest.Sign(t, jwt.MapClaims{"role": "admin"})},
		{"missing role", sessiontest.Sign(t, jwt.MapClaims{"sub": "u1"})},
		{"unknown role", sessiontest.Sign(t, jwt.MapClaims{"sub": "u1", "role": "janitor"})},
		{"numeric subject", sessiontest.Sign(t, jwt.MapClaims{"sub": 7, "role": "admin"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Decode(tt.token))
		})
	}
}
