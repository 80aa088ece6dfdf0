package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		session  *Session
		expected bool
	}{
		{
			name:     "nil session",
			session:  nil,
			expected: true,
		},
		{
			name:     "empty token",
			session:  &Session{},
			expected: true,
		},
		{
			name:     "no expiry",
			session:  &Session{AccessToken: "opaque"},
			expected: false,
		},
		{
			name:     "expired",
			session:  &Session{AccessToken: "t", ExpiresAt: &past},
			expected: true,
		},
		{
			name:     "valid",
			session:  &Session{AccessToken: "t", ExpiresAt: &future},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.session.Expired(now))
		})
	}
}

func TestUserState_Anonymous(t *testing.T) {
	assert.True(t, StateWaitingLoginEmail.Anonymous())
	assert.True(t, StateWaitingSignupPassword.Anonymous())
	assert.False(t, StateIdle.Anonymous())
	assert.False(t, StateWaitingTranslation.Anonymous())
}
