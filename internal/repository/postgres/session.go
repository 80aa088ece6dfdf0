package postgres

import (
	"database/sql"
	"time"

	"vocabdash/internal/domain"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Save stores the session, replacing any previous one of the user
func (r *SessionRepo) Save(s *domain.Session) error {
	query := `
		INSERT INTO sessions (user_id, email, access_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET email = EXCLUDED.email,
			access_token = EXCLUDED.access_token,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at
	`
	var expiresAt sql.NullTime
	if s.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *s.ExpiresAt, Valid: true}
	}
	_, err := r.db.Exec(query, s.UserID, s.Email, s.AccessToken, expiresAt, s.CreatedAt)
	return err
}

// Get returns the user's session or nil if the user is signed out
func (r *SessionRepo) Get(userID int64) (*domain.Session, error) {
	var s domain.Session
	var expiresAt sql.NullTime
	query := `
		SELECT user_id, email, access_token, expires_at, created_at
		FROM sessions
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&s.UserID, &s.Email, &s.AccessToken, &expiresAt, &s.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		s.ExpiresAt = &expiresAt.Time
	}

	return &s, nil
}

// Delete removes the user's session
func (r *SessionRepo) Delete(userID int64) error {
	query := `DELETE FROM sessions WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

// CleanExpired deletes sessions whose token expired before the given time
func (r *SessionRepo) CleanExpired(before time.Time) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at IS NOT NULL AND expires_at < $1
	`
	res, err := r.db.Exec(query, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
