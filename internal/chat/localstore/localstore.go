// Package localstore persists chat session lists as one JSON document per
// user in a local data directory. It is the default Adapter implementation
// and mirrors the key-value storage the web client used: a fixed prefix plus
// the user id, with the whole list rewritten on every save.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gabai/gabai-backend/internal/chat"
)

// keyPrefix namespaces session files so other per-user state in the same
// directory can never collide with chat data.
const keyPrefix = "gabai_chat_sessions_"

// Store is a file-backed chat.Adapter.
type Store struct {
	dir string
	log *logrus.Entry
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		dir: dir,
		log: logrus.WithField("component", "localstore"),
	}, nil
}

func (s *Store) path(userID string) string {
	return filepath.Join(s.dir, keyPrefix+userID+".json")
}

// storedAttachment, storedMessage and storedSession mirror the wire shape
// with timestamps as strings, so malformed fields can be repaired instead
// of failing the whole decode.
type storedAttachment struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Name     string `json:"name"`
	Duration *int   `json:"duration,omitempty"`
}

type storedMessage struct {
	ID          string             `json:"id"`
	Text        string             `json:"text"`
	Sender      string             `json:"sender"`
	Timestamp   string             `json:"timestamp"`
	Attachments []storedAttachment `json:"attachments,omitempty"`
}

type storedSession struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Messages    []storedMessage `json:"messages"`
	CreatedAt   string          `json:"createdAt"`
	LastUpdated string          `json:"lastUpdated"`
}

// Load reads the user's session list. A missing file and an unparseable one
// both yield chat.ErrNoSessions; the caller reseeds. Parse failures are
// logged, never propagated, so a corrupt entry cannot block the user from
// chatting.
func (s *Store) Load(ctx context.Context, userID string) ([]chat.Session, error) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, chat.ErrNoSessions
		}
		s.log.WithError(err).WithField("user_id", userID).Error("failed to read session file")
		return nil, chat.ErrNoSessions
	}

	var stored []storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("corrupt session data, falling back to empty")
		return nil, chat.ErrNoSessions
	}

	sessions := make([]chat.Session, 0, len(stored))
	for _, ss := range stored {
		sessions = append(sessions, repairSession(ss))
	}
	return sessions, nil
}

// Save serializes the full list and overwrites the prior value. The write
// goes through a temp file and rename so a crash mid-write never leaves a
// truncated document behind.
func (s *Store) Save(ctx context.Context, userID string, sessions []chat.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}

	path := s.path(userID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// repairSession rebuilds a session from its stored shape, repairing
// malformed fields deterministically: bad timestamps fall back to now,
// missing ids are regenerated, unknown senders become bot.
func repairSession(ss storedSession) chat.Session {
	now := time.Now()
	session := chat.Session{
		ID:          ss.ID,
		Title:       ss.Title,
		CreatedAt:   parseTime(ss.CreatedAt, now),
		LastUpdated: parseTime(ss.LastUpdated, now),
	}
	if session.ID == "" {
		session.ID = fmt.Sprintf("%d", now.UnixNano())
	}
	if session.Title == "" {
		session.Title = chat.DefaultTitle
	}

	session.Messages = make([]chat.Message, 0, len(ss.Messages))
	for _, sm := range ss.Messages {
		msg := chat.Message{
			ID:        sm.ID,
			Text:      sm.Text,
			Sender:    sm.Sender,
			Timestamp: parseTime(sm.Timestamp, now),
		}
		if msg.ID == "" {
			msg.ID = uuid.New().String()
		}
		if msg.Sender != chat.SenderUser && msg.Sender != chat.SenderBot {
			msg.Sender = chat.SenderBot
		}
		for _, sa := range sm.Attachments {
			msg.Attachments = append(msg.Attachments, chat.Attachment{
				Type:     sa.Type,
				URL:      sa.URL,
				Name:     sa.Name,
				Duration: sa.Duration,
			})
		}
		session.Messages = append(session.Messages, msg)
	}
	return session
}

func parseTime(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return fallback
	}
	return t
}
