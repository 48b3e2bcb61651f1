package chat

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// State tracks store initialization for one user context.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Config holds the store's tunable behavior. Delays exist purely for UI
// affordances; tests set them to zero.
type Config struct {
	// SessionSwitchDelay is slept by LoadSession before the current
	// pointer moves, giving consumers room for a transition animation.
	SessionSwitchDelay time.Duration
}

// Store owns the session list and current-session pointer for a single
// user. All mutations go through its methods; consumers receive copies and
// are notified through Subscribe after every successful mutation, so every
// view of the same store observes identical state.
type Store struct {
	adapter Adapter
	cfg     Config
	log     *logrus.Entry

	mu        sync.Mutex
	state     State
	userID    string
	sessions  []Session // newest-created first
	currentID string

	observers map[int]func()
	nextObs   int
}

// NewStore creates an inactive store. Activate must be called with a user
// identity before any other operation.
func NewStore(adapter Adapter, cfg Config) *Store {
	return &Store{
		adapter:   adapter,
		cfg:       cfg,
		log:       logrus.WithField("component", "chat.store"),
		observers: make(map[int]func()),
	}
}

// Activate binds the store to a user identity and loads their sessions.
// A missing or unreadable stored list reseeds exactly one greeting session.
// Calling Activate with the same user id again is a no-op once ready.
func (s *Store) Activate(ctx context.Context, userID string) error {
	s.mu.Lock()
	if s.state == StateReady && s.userID == userID {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	s.userID = userID
	s.sessions = nil
	s.currentID = ""
	s.mu.Unlock()

	sessions, err := s.adapter.Load(ctx, userID)
	if err != nil {
		if err != ErrNoSessions {
			// Load failures never block the user from chatting.
			s.log.WithError(err).WithField("user_id", userID).Error("failed to load sessions, reseeding")
		}
		sessions = []Session{NewSeededSession()}
		s.persist(ctx, userID, sessions)
	}
	if len(sessions) == 0 {
		sessions = []Session{NewSeededSession()}
		s.persist(ctx, userID, sessions)
	}

	s.mu.Lock()
	s.sessions = sessions
	s.currentID = sessions[0].ID
	s.state = StateReady
	s.mu.Unlock()

	s.notify()
	return nil
}

// State returns the store's lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UserID returns the bound user identity, empty before Activate.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Sessions returns a deep copy of the session list, newest-created first.
func (s *Store) Sessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Session returns a copy of one session by id.
func (s *Store) Session(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, session := range s.sessions {
		if session.ID == id {
			return session.Clone(), nil
		}
	}
	return Session{}, ErrSessionNotFound
}

// CurrentSessionID returns the current-session pointer.
func (s *Store) CurrentSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// CurrentSession returns a copy of the session the current pointer targets.
func (s *Store) CurrentSession() (Session, error) {
	s.mu.Lock()
	id := s.currentID
	s.mu.Unlock()
	return s.Session(id)
}

// CreateNewSession synthesizes a seeded session, prepends it and makes it
// current. The new id is returned synchronously.
func (s *Store) CreateNewSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return "", ErrNoUser
	}
	session := NewSeededSession()
	s.sessions = append([]Session{session}, s.sessions...)
	s.currentID = session.ID
	userID, snapshot := s.userID, s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, userID, snapshot)
	s.notify()
	return session.ID, nil
}

// LoadSession moves the current pointer. The configured switch delay is a
// functional no-op kept for UI transitions.
func (s *Store) LoadSession(ctx context.Context, id string) error {
	if _, err := s.Session(id); err != nil {
		return err
	}
	if s.cfg.SessionSwitchDelay > 0 {
		select {
		case <-time.After(s.cfg.SessionSwitchDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	// Re-check: the session may have been deleted during the delay.
	if !s.containsLocked(id) {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.currentID = id
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteSession removes a session. If it was current, the next most recent
// session becomes current; deleting the last session reseeds exactly one.
// The caller is responsible for user confirmation.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNoUser
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrSessionNotFound
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	if s.currentID == id {
		if len(s.sessions) > 0 {
			s.currentID = s.sessions[0].ID
		} else {
			seeded := NewSeededSession()
			s.sessions = []Session{seeded}
			s.currentID = seeded.ID
		}
	}
	userID, snapshot := s.userID, s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, userID, snapshot)
	s.notify()
	return nil
}

// AppendMessage appends to the target session. Prior messages are never
// touched. The first user message in an otherwise-seeded session derives
// the title; once derived it is never overwritten automatically.
func (s *Store) AppendMessage(ctx context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNoUser
	}
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrSessionNotFound
	}

	session := &s.sessions[idx]
	if msg.Sender == SenderUser && len(session.Messages) == 1 && session.Messages[0].Sender == SenderBot {
		session.Title = DeriveTitle(msg.Text)
	}
	session.Messages = append(session.Messages, msg)
	session.LastUpdated = time.Now()
	userID, snapshot := s.userID, s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, userID, snapshot)
	s.notify()
	return nil
}

// ClearCurrentSession resets the current session back to a single seeded
// greeting and the default title.
func (s *Store) ClearCurrentSession(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNoUser
	}
	idx := s.indexLocked(s.currentID)
	if idx < 0 {
		s.mu.Unlock()
		return ErrSessionNotFound
	}

	session := &s.sessions[idx]
	session.Title = DefaultTitle
	session.Messages = []Message{NewMessage(Greeting, SenderBot, nil)}
	session.LastUpdated = time.Now()
	userID, snapshot := s.userID, s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, userID, snapshot)
	s.notify()
	return nil
}

// Subscribe registers an observer invoked after every successful mutation.
// The returned function unsubscribes it.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) indexLocked(id string) int {
	for i, session := range s.sessions {
		if session.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) containsLocked(id string) bool {
	return s.indexLocked(id) >= 0
}

// snapshotLocked deep-copies the session list for persistence outside the
// lock. Callers must hold mu.
func (s *Store) snapshotLocked() []Session {
	out := make([]Session, len(s.sessions))
	for i, session := range s.sessions {
		out[i] = session.Clone()
	}
	return out
}

// persist writes the full list through the adapter. Failures are logged and
// swallowed: the in-memory state stays authoritative for the process
// lifetime even when storage is unavailable.
func (s *Store) persist(ctx context.Context, userID string, sessions []Session) {
	if err := s.adapter.Save(ctx, userID, sessions); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("failed to persist sessions")
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
