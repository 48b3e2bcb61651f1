package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Attachment types.
const (
	AttachmentImage = "image"
	AttachmentFile  = "file"
	AttachmentAudio = "audio"
)

// Greeting is the seeded bot message present in every new session.
const Greeting = "Hello! I'm GabAi, your NEMSU AI Assistant. How can I help you today?"

// DefaultTitle is the title of a session before the first user message names it.
const DefaultTitle = "New Conversation"

// TitleMaxLen is the truncation point for auto-derived session titles.
const TitleMaxLen = 50

// Attachment is a non-text payload carried by a message. URL is a
// self-contained data URI so the session list needs no side storage.
type Attachment struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	Name     string `json:"name"`
	Duration *int   `json:"duration,omitempty"` // seconds, audio only
}

// Message is one entry in a session. Messages are append-only and Sender
// is immutable once created.
type Message struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Sender      string       `json:"sender"`
	Timestamp   time.Time    `json:"timestamp"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Session is one conversation thread belonging to one user.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewMessage creates a message with a fresh id and timestamp.
func NewMessage(text, sender string, attachments []Attachment) Message {
	return Message{
		ID:          uuid.New().String(),
		Text:        text,
		Sender:      sender,
		Timestamp:   time.Now(),
		Attachments: attachments,
	}
}

// NewSeededSession creates a session holding only the bot greeting.
func NewSeededSession() Session {
	now := time.Now()
	return Session{
		ID:    uuid.New().String(),
		Title: DefaultTitle,
		Messages: []Message{{
			ID:        uuid.New().String(),
			Text:      Greeting,
			Sender:    SenderBot,
			Timestamp: now,
		}},
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// DeriveTitle truncates the first user message into a session title,
// appending an ellipsis only when truncation occurred.
func DeriveTitle(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= TitleMaxLen {
		return string(runes)
	}
	return string(runes[:TitleMaxLen]) + "..."
}

// Clone returns a deep copy of the session so callers can hand state to
// consumers without exposing the store's internals to mutation.
func (s Session) Clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	for i, m := range s.Messages {
		if len(m.Attachments) > 0 {
			atts := make([]Attachment, len(m.Attachments))
			copy(atts, m.Attachments)
			out.Messages[i].Attachments = atts
		}
	}
	return out
}
