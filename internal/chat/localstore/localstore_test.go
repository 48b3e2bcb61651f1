package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabai/gabai-backend/internal/chat"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStore_MissingFileYieldsNoSessions(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, chat.ErrNoSessions)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	duration := 7
	session := chat.NewSeededSession()
	session.Messages = append(session.Messages,
		chat.NewMessage("what courses are offered?", chat.SenderUser, []chat.Attachment{{
			Type: chat.AttachmentAudio,
			URL:  "data:audio/webm;base64,AAAA",
			Name: "voice-message.webm",
			Duration: &duration,
		}}),
	)
	session.Title = "what courses are offered?"
	second := chat.NewSeededSession()

	require.NoError(t, store.Save(ctx, "alice", []chat.Session{session, second}))

	loaded, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	got := loaded[0]
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.Title, got.Title)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chat.Greeting, got.Messages[0].Text)
	assert.Equal(t, chat.SenderBot, got.Messages[0].Sender)
	assert.Equal(t, "what courses are offered?", got.Messages[1].Text)
	assert.Equal(t, chat.SenderUser, got.Messages[1].Sender)
	require.Len(t, got.Messages[1].Attachments, 1)
	assert.Equal(t, chat.AttachmentAudio, got.Messages[1].Attachments[0].Type)
	require.NotNil(t, got.Messages[1].Attachments[0].Duration)
	assert.Equal(t, 7, *got.Messages[1].Attachments[0].Duration)
	assert.True(t, got.CreatedAt.Equal(session.CreatedAt))
	assert.True(t, got.LastUpdated.Equal(session.LastUpdated))

	assert.Equal(t, second.ID, loaded[1].ID)
}

func TestStore_SaveOverwritesPriorList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := chat.NewSeededSession()
	require.NoError(t, store.Save(ctx, "alice", []chat.Session{first}))

	replacement := chat.NewSeededSession()
	require.NoError(t, store.Save(ctx, "alice", []chat.Session{replacement}))

	loaded, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, replacement.ID, loaded[0].ID)
}

func TestStore_UsersAreScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	aliceSession := chat.NewSeededSession()
	require.NoError(t, store.Save(ctx, "alice", []chat.Session{aliceSession}))

	_, err := store.Load(ctx, "bob")
	assert.ErrorIs(t, err, chat.ErrNoSessions)

	// The per-user file is namespaced under the storage prefix.
	_, err = os.Stat(filepath.Join(store.dir, "gabai_chat_sessions_alice.json"))
	assert.NoError(t, err)
}

func TestStore_MalformedJSONSoftFails(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(store.dir, "gabai_chat_sessions_alice.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0o644))

	_, err := store.Load(context.Background(), "alice")
	assert.ErrorIs(t, err, chat.ErrNoSessions)
}

func TestStore_RepairsMalformedFields(t *testing.T) {
	store := newTestStore(t)

	raw := `[{
		"id": "",
		"title": "",
		"createdAt": "not-a-timestamp",
		"lastUpdated": "also bad",
		"messages": [
			{"id": "m1", "text": "hello", "sender": "alien", "timestamp": "garbage"},
			{"id": "", "text": "anonymous", "sender": "user", "timestamp": ""}
		]
	}]`
	path := filepath.Join(store.dir, "gabai_chat_sessions_alice.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	before := time.Now()
	loaded, err := store.Load(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, chat.DefaultTitle, got.Title)
	assert.False(t, got.CreatedAt.Before(before))
	assert.False(t, got.LastUpdated.Before(before))
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "m1", got.Messages[0].ID)
	assert.Equal(t, chat.SenderBot, got.Messages[0].Sender)
	assert.False(t, got.Messages[0].Timestamp.Before(before))
	assert.NotEmpty(t, got.Messages[1].ID)
	assert.NotEqual(t, got.Messages[0].ID, got.Messages[1].ID)
	assert.Equal(t, chat.SenderUser, got.Messages[1].Sender)
}

func TestStore_LoadIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := chat.NewSeededSession()
	require.NoError(t, store.Save(ctx, "alice", []chat.Session{session}))

	first, err := store.Load(ctx, "alice")
	require.NoError(t, err)
	second, err := store.Load(ctx, "alice")
	require.NoError(t, err)

	require.Len(t, second, len(first))
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.True(t, first[0].CreatedAt.Equal(second[0].CreatedAt))
}
