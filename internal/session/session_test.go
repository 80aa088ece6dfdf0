package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret-we-never-see"))
	require.NoError(t, err)
	return token
}

func TestNew_JWT(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	exp := now.Add(30 * time.Minute)

	token := signedToken(t, jwt.RegisteredClaims{
		Subject:   "reader@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	})

	s := New(42, "", token, now)

	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, token, s.AccessToken)
	assert.Equal(t, "reader@example.com", s.Email)
	require.NotNil(t, s.ExpiresAt)
	assert.True(t, exp.Equal(*s.ExpiresAt))
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(exp.Add(time.Second)))
}

func TestNew_ExplicitEmailWins(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{Subject: "claims@example.com"})

	s := New(1, "typed@example.com", token, time.Now())

	assert.Equal(t, "typed@example.com", s.Email)
	assert.Nil(t, s.ExpiresAt)
}

func TestNew_OpaqueToken(t *testing.T) {
	now := time.Now()
	s := New(7, "reader@example.com", "not-a-jwt", now)

	assert.Equal(t, "not-a-jwt", s.AccessToken)
	assert.Nil(t, s.ExpiresAt)
	assert.False(t, s.Expired(now.Add(365*24*time.Hour)))
}
