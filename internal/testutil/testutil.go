package testutil

import (
	"time"

	"vocabdash/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestSession creates a session that expires after ttl; zero ttl means no expiry
func NewTestSession(userID int64, token string, ttl time.Duration) *domain.Session {
	s := &domain.Session{
		UserID:      userID,
		Email:       "reader@example.com",
		AccessToken: token,
		CreatedAt:   time.Now(),
	}
	if ttl != 0 {
		expires := time.Now().Add(ttl)
		s.ExpiresAt = &expires
	}
	return s
}

// NewTestDocument creates a test document
func NewTestDocument(id int64, filename string) domain.Document {
	return domain.Document{
		ID:         id,
		UserID:     1,
		Filename:   filename,
		FileType:   "text/plain",
		UploadDate: domain.Timestamp{Time: time.Now()},
	}
}

// NewTestWords creates the word list of the reference example:
// the:120, a:80 and a translated xylophone:1
func NewTestWords() []domain.WordStat {
	return []domain.WordStat{
		{Word: "the", Frequency: 120},
		{Word: "a", Frequency: 80},
		{Word: "xylophone", Frequency: 1, Translation: "জাইলোফোন"},
	}
}
