package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memAdapter is an in-memory Adapter for exercising the store without disk.
type memAdapter struct {
	mu      sync.Mutex
	data    map[string][]Session
	loadErr error
	saveErr error
	saves   int
}

func newMemAdapter() *memAdapter {
	return &memAdapter{data: make(map[string][]Session)}
}

func (a *memAdapter) Load(ctx context.Context, userID string) ([]Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loadErr != nil {
		return nil, a.loadErr
	}
	sessions, ok := a.data[userID]
	if !ok {
		return nil, ErrNoSessions
	}
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = s.Clone()
	}
	return out, nil
}

func (a *memAdapter) Save(ctx context.Context, userID string, sessions []Session) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saves++
	if a.saveErr != nil {
		return a.saveErr
	}
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = s.Clone()
	}
	a.data[userID] = out
	return nil
}

func readyStore(t *testing.T, adapter Adapter) *Store {
	t.Helper()
	store := NewStore(adapter, Config{})
	require.NoError(t, store.Activate(context.Background(), "user-1"))
	return store
}

func TestStore_ActivateSeedsNewUser(t *testing.T) {
	adapter := newMemAdapter()
	store := readyStore(t, adapter)

	assert.Equal(t, StateReady, store.State())
	assert.Equal(t, "user-1", store.UserID())

	sessions := store.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, DefaultTitle, sessions[0].Title)
	require.Len(t, sessions[0].Messages, 1)
	assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
	assert.Equal(t, SenderBot, sessions[0].Messages[0].Sender)
	assert.Equal(t, sessions[0].ID, store.CurrentSessionID())

	// The seeded list is persisted so a reload sees the same session.
	assert.Len(t, adapter.data["user-1"], 1)
}

func TestStore_ActivateLoadFailureReseeds(t *testing.T) {
	adapter := newMemAdapter()
	adapter.loadErr = errors.New("disk on fire")
	store := NewStore(adapter, Config{})

	require.NoError(t, store.Activate(context.Background(), "user-1"))
	sessions := store.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
}

func TestStore_CreateNewSessionPrependsAndSwitchesCurrent(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	first := store.CurrentSessionID()

	id, err := store.CreateNewSession(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, id)
	assert.Equal(t, id, store.CurrentSessionID())

	sessions := store.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, id, sessions[0].ID)
	assert.Equal(t, first, sessions[1].ID)
	require.Len(t, sessions[0].Messages, 1)
	assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
}

func TestStore_AppendMessageDerivesTitleOnce(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "Short message kept verbatim",
			text:     "Where is the library?",
			expected: "Where is the library?",
		},
		{
			name:     "Long message truncated with ellipsis",
			text:     strings.Repeat("a", 80),
			expected: strings.Repeat("a", 50) + "...",
		},
		{
			name:     "Exactly at the limit gets no ellipsis",
			text:     strings.Repeat("b", 50),
			expected: strings.Repeat("b", 50),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := readyStore(t, newMemAdapter())
			id := store.CurrentSessionID()

			err := store.AppendMessage(context.Background(), id, NewMessage(tt.text, SenderUser, nil))
			require.NoError(t, err)

			session, err := store.Session(id)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, session.Title)

			// A later user message never re-derives the title.
			err = store.AppendMessage(context.Background(), id, NewMessage("something else entirely", SenderUser, nil))
			require.NoError(t, err)
			session, err = store.Session(id)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, session.Title)
		})
	}
}

func TestStore_AppendMessagePreservesPriorMessages(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	id := store.CurrentSessionID()
	ctx := context.Background()

	require.NoError(t, store.AppendMessage(ctx, id, NewMessage("first question", SenderUser, nil)))
	require.NoError(t, store.AppendMessage(ctx, id, NewMessage("first answer", SenderBot, nil)))
	require.NoError(t, store.AppendMessage(ctx, id, NewMessage("second question", SenderUser, nil)))

	session, err := store.Session(id)
	require.NoError(t, err)
	require.Len(t, session.Messages, 4)
	assert.Equal(t, Greeting, session.Messages[0].Text)
	assert.Equal(t, "first question", session.Messages[1].Text)
	assert.Equal(t, "first answer", session.Messages[2].Text)
	assert.Equal(t, "second question", session.Messages[3].Text)
	assert.False(t, session.LastUpdated.Before(session.CreatedAt))
}

func TestStore_AppendToDeletedSessionFails(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	ctx := context.Background()

	doomed, err := store.CreateNewSession(ctx)
	require.NoError(t, err)
	require.NoError(t, store.DeleteSession(ctx, doomed))

	err = store.AppendMessage(ctx, doomed, NewMessage("too late", SenderBot, nil))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_DeleteCurrentFallsBackToMostRecent(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	ctx := context.Background()
	first := store.CurrentSessionID()

	second, err := store.CreateNewSession(ctx)
	require.NoError(t, err)
	require.Equal(t, second, store.CurrentSessionID())

	require.NoError(t, store.DeleteSession(ctx, second))
	assert.Equal(t, first, store.CurrentSessionID())
	assert.Len(t, store.Sessions(), 1)
}

func TestStore_DeleteNonCurrentKeepsPointer(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	ctx := context.Background()
	first := store.CurrentSessionID()

	second, err := store.CreateNewSession(ctx)
	require.NoError(t, err)

	require.NoError(t, store.DeleteSession(ctx, first))
	assert.Equal(t, second, store.CurrentSessionID())
}

func TestStore_DeleteLastSessionReseedsExactlyOne(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	ctx := context.Background()
	only := store.CurrentSessionID()

	require.NoError(t, store.DeleteSession(ctx, only))

	sessions := store.Sessions()
	require.Len(t, sessions, 1)
	assert.NotEqual(t, only, sessions[0].ID)
	assert.Equal(t, DefaultTitle, sessions[0].Title)
	require.Len(t, sessions[0].Messages, 1)
	assert.Equal(t, Greeting, sessions[0].Messages[0].Text)
	assert.Equal(t, sessions[0].ID, store.CurrentSessionID())
}

func TestStore_DeleteUnknownSession(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	err := store.DeleteSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_LoadSessionMovesPointer(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	ctx := context.Background()
	first := store.CurrentSessionID()

	_, err := store.CreateNewSession(ctx)
	require.NoError(t, err)

	require.NoError(t, store.LoadSession(ctx, first))
	assert.Equal(t, first, store.CurrentSessionID())

	assert.ErrorIs(t, store.LoadSession(ctx, "missing"), ErrSessionNotFound)
}

func TestStore_ClearCurrentSession(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	ctx := context.Background()
	id := store.CurrentSessionID()

	require.NoError(t, store.AppendMessage(ctx, id, NewMessage("name this session", SenderUser, nil)))
	require.NoError(t, store.ClearCurrentSession(ctx))

	session, err := store.Session(id)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, session.Title)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, Greeting, session.Messages[0].Text)
}

func TestStore_ReloadSeesPersistedMutations(t *testing.T) {
	adapter := newMemAdapter()
	store := readyStore(t, adapter)
	ctx := context.Background()
	id := store.CurrentSessionID()

	require.NoError(t, store.AppendMessage(ctx, id, NewMessage("remember me", SenderUser, nil)))

	reloaded := NewStore(adapter, Config{})
	require.NoError(t, reloaded.Activate(ctx, "user-1"))

	session, err := reloaded.Session(id)
	require.NoError(t, err)
	assert.Equal(t, "remember me", session.Title)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "remember me", session.Messages[1].Text)
}

func TestStore_PersistFailureKeepsInMemoryState(t *testing.T) {
	adapter := newMemAdapter()
	store := readyStore(t, adapter)
	ctx := context.Background()
	id := store.CurrentSessionID()

	adapter.saveErr = errors.New("storage unavailable")

	require.NoError(t, store.AppendMessage(ctx, id, NewMessage("still here", SenderUser, nil)))
	session, err := store.Session(id)
	require.NoError(t, err)
	assert.Len(t, session.Messages, 2)
}

func TestStore_SubscribeNotifiesOnMutation(t *testing.T) {
	store := readyStore(t, newMemAdapter())
	ctx := context.Background()

	var mu sync.Mutex
	count := 0
	unsubscribe := store.Subscribe(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	_, err := store.CreateNewSession(ctx)
	require.NoError(t, err)
	require.NoError(t, store.AppendMessage(ctx, store.CurrentSessionID(), NewMessage("hi", SenderUser, nil)))

	mu.Lock()
	assert.Equal(t, 2, count)
	mu.Unlock()

	unsubscribe()
	_, err = store.CreateNewSession(ctx)
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, 2, count)
	mu.Unlock()
}

func TestStore_OperationsBeforeActivate(t *testing.T) {
	store := NewStore(newMemAdapter(), Config{})
	ctx := context.Background()

	_, err := store.CreateNewSession(ctx)
	assert.ErrorIs(t, err, ErrNoUser)
	assert.ErrorIs(t, store.DeleteSession(ctx, "x"), ErrNoUser)
	assert.ErrorIs(t, store.AppendMessage(ctx, "x", NewMessage("hi", SenderUser, nil)), ErrNoUser)
}
