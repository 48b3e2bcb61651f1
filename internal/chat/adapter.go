package chat

import (
	"context"
	"errors"
)

var (
	// ErrNoSessions is returned by Load when no usable session list exists
	// for the user. Callers seed an initial session in response.
	ErrNoSessions = errors.New("no stored sessions")
	// ErrSessionNotFound is returned when an operation targets a session
	// that is not in the list.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoUser is returned when the store has no active user context.
	ErrNoUser = errors.New("no active user")
)

// Adapter persists the full session list for a user. Save overwrites the
// prior value on every call; there is no incremental diffing. Implementations
// must scope storage by user id so lists for different users never collide.
type Adapter interface {
	Load(ctx context.Context, userID string) ([]Session, error)
	Save(ctx context.Context, userID string, sessions []Session) error
}
