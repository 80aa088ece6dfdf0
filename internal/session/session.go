// Package session builds the signed-in state of a chat user from a backend access token.
package session

import (
	"time"

	"vocabdash/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// New creates a session for the token issued to email.
// JWT tokens contribute their expiry and subject; the signature is the backend's business
// and is not verified here. Opaque tokens yield a session without expiry.
func New(userID int64, email, accessToken string, now time.Time) *domain.Session {
	s := &domain.Session{
		UserID:      userID,
		Email:       email,
		AccessToken: accessToken,
		CreatedAt:   now,
	}

	claims, ok := parseClaims(accessToken)
	if !ok {
		return s
	}

	if claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.Time
		s.ExpiresAt = &expires
	}
	if s.Email == "" && claims.Subject != "" {
		s.Email = claims.Subject
	}

	return s
}

func parseClaims(token string) (*jwt.RegisteredClaims, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
