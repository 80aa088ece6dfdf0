package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vocabdash/internal/domain"
	"vocabdash/internal/repository"
	"vocabdash/internal/session"

	"go.uber.org/zap"
)

var ErrMissingCredentials = errors.New("email and password are required")

// AuthService handles authentication logic
type AuthService struct {
	api      API
	sessions repository.SessionRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(api API, sessions repository.SessionRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Login signs the user in and stores the session
func (s *AuthService) Login(ctx context.Context, userID int64, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := session.New(userID, email, token, s.now())
	if err := s.sessions.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("User signed in",
		zap.Int64("user_id", userID),
		zap.Bool("token_expires", sess.ExpiresAt != nil),
	)
	return sess, nil
}

// Signup creates an account. The user signs in separately afterwards.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := s.api.Signup(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return account, nil
}

// CurrentSession returns the user's live session, or nil when signed out.
// An expired session is dropped through Logout.
func (s *AuthService) CurrentSession(userID int64) (*domain.Session, error) {
	sess, err := s.sessions.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}

	if sess.Expired(s.now()) {
		s.logger.Info("Session expired", zap.Int64("user_id", userID))
		if err := s.Logout(userID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return sess, nil
}

// Logout forgets the user's token. Every sign-out path ends here.
func (s *AuthService) Logout(userID int64) error {
	if err := s.sessions.Delete(userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("User signed out", zap.Int64("user_id", userID))
	return nil
}
