package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

// UserSessionRepository implements repository.UserSessionRepository using PostgreSQL.
type UserSessionRepository struct {
	db *sqlx.DB
}

// NewUserSessionRepository creates a new PostgreSQL login session repository.
func NewUserSessionRepository(db *sqlx.DB) repository.UserSessionRepository {
	return &UserSessionRepository{db: db}
}

// Create inserts a new login session.
func (r *UserSessionRepository) Create(ctx context.Context, session *models.UserSession) error {
	query := `
		INSERT INTO user_sessions (id, user_id, token_hash, refresh_token_hash, expires_at, refresh_expires_at, ip_address, user_agent, created_at, last_activity)
		VALUES (:id, :user_id, :token_hash, :refresh_token_hash, :expires_at, :refresh_expires_at, :ip_address, :user_agent, :created_at, :last_activity)
	`
	_, err := r.db.NamedExecContext(ctx, query, session)
	return err
}

// GetByTokenHash retrieves a session by access token hash.
func (r *UserSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.UserSession, error) {
	var session models.UserSession
	query := `SELECT * FROM user_sessions WHERE token_hash = $1 AND revoked_at IS NULL`
	if err := r.db.GetContext(ctx, &session, query, tokenHash); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByRefreshTokenHash retrieves a session by refresh token hash.
func (r *UserSessionRepository) GetByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*models.UserSession, error) {
	var session models.UserSession
	query := `SELECT * FROM user_sessions WHERE refresh_token_hash = $1 AND revoked_at IS NULL`
	if err := r.db.GetContext(ctx, &session, query, refreshTokenHash); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update rewrites a session's token hashes and activity timestamps.
func (r *UserSessionRepository) Update(ctx context.Context, session *models.UserSession) error {
	session.LastActivity = time.Now()
	query := `
		UPDATE user_sessions
		SET token_hash = :token_hash, refresh_token_hash = :refresh_token_hash,
		    expires_at = :expires_at, refresh_expires_at = :refresh_expires_at,
		    last_activity = :last_activity, revoked_at = :revoked_at
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, session)
	return err
}

// Delete removes a session.
func (r *UserSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM user_sessions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// DeleteUserSessions removes all sessions for a user.
func (r *UserSessionRepository) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM user_sessions WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
