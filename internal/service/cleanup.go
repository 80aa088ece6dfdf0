package service

import (
	"time"

	"vocabdash/internal/repository"

	"go.uber.org/zap"
)

// CleanupService removes stale local data
type CleanupService struct {
	sessions repository.SessionRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(sessions repository.SessionRepository, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// CleanupExpiredSessions deletes sessions whose access token has expired
func (s *CleanupService) CleanupExpiredSessions() error {
	s.logger.Info("Starting cleanup of expired sessions")

	removed, err := s.sessions.CleanExpired(s.now())
	if err != nil {
		s.logger.Error("Failed to cleanup expired sessions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("removed", removed))
	return nil
}
