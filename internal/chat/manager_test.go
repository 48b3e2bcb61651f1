package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SharesStorePerUser(t *testing.T) {
	manager := NewManager(newMemAdapter(), Config{})
	ctx := context.Background()

	a, err := manager.ForUser(ctx, "alice")
	require.NoError(t, err)
	b, err := manager.ForUser(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestManager_IsolatesUsers(t *testing.T) {
	manager := NewManager(newMemAdapter(), Config{})
	ctx := context.Background()

	alice, err := manager.ForUser(ctx, "alice")
	require.NoError(t, err)
	bob, err := manager.ForUser(ctx, "bob")
	require.NoError(t, err)
	assert.NotSame(t, alice, bob)

	id, err := alice.CreateNewSession(ctx)
	require.NoError(t, err)

	_, err = bob.Session(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Len(t, bob.Sessions(), 1)
}

func TestManager_EmptyUserID(t *testing.T) {
	manager := NewManager(newMemAdapter(), Config{})
	_, err := manager.ForUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestManager_ReleaseReloadsFromStorage(t *testing.T) {
	adapter := newMemAdapter()
	manager := NewManager(adapter, Config{})
	ctx := context.Background()

	store, err := manager.ForUser(ctx, "alice")
	require.NoError(t, err)
	id := store.CurrentSessionID()
	require.NoError(t, store.AppendMessage(ctx, id, NewMessage("keep this", SenderUser, nil)))

	manager.Release("alice")

	fresh, err := manager.ForUser(ctx, "alice")
	require.NoError(t, err)
	assert.NotSame(t, store, fresh)

	session, err := fresh.Session(id)
	require.NoError(t, err)
	assert.Len(t, session.Messages, 2)
}
