// Package pgstore is a PostgreSQL-backed chat.Adapter. It keeps the same
// load/save contract as localstore: the whole session list for a user is
// one serialized document, overwritten on every save. Swapping it in
// changes where sessions survive, not how the store behaves.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/gabai/gabai-backend/internal/chat"
)

// Store persists session lists in the chat_snapshots table.
type Store struct {
	db  *sqlx.DB
	log *logrus.Entry
}

// New creates a postgres-backed session adapter.
func New(db *sqlx.DB) *Store {
	return &Store{
		db:  db,
		log: logrus.WithField("component", "pgstore"),
	}
}

type snapshot struct {
	UserID    string    `db:"user_id"`
	Sessions  []byte    `db:"sessions"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Load reads the user's snapshot. No row and an undecodable payload both
// yield chat.ErrNoSessions so the caller reseeds, matching localstore.
func (s *Store) Load(ctx context.Context, userID string) ([]chat.Session, error) {
	var snap snapshot
	query := `SELECT user_id, sessions, updated_at FROM chat_snapshots WHERE user_id = $1`
	if err := s.db.GetContext(ctx, &snap, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, chat.ErrNoSessions
		}
		return nil, fmt.Errorf("load chat snapshot: %w", err)
	}

	var sessions []chat.Session
	if err := json.Unmarshal(snap.Sessions, &sessions); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("corrupt chat snapshot, falling back to empty")
		return nil, chat.ErrNoSessions
	}
	return sessions, nil
}

// Save upserts the full session list for the user.
func (s *Store) Save(ctx context.Context, userID string, sessions []chat.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}

	query := `
		INSERT INTO chat_snapshots (user_id, sessions, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET sessions = $2, updated_at = $3
	`
	if _, err := s.db.ExecContext(ctx, query, userID, data, time.Now()); err != nil {
		return fmt.Errorf("save chat snapshot: %w", err)
	}
	return nil
}
