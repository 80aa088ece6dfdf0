package repository

import (
	"time"

	"vocabdash/internal/domain"
)

// SessionRepository defines session data operations
type SessionRepository interface {
	Save(session *domain.Session) error
	Get(userID int64) (*domain.Session, error)
	Delete(userID int64) error
	CleanExpired(before time.Time) (int64, error)
}
