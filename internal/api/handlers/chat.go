package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"github.com/gabai/gabai-backend/internal/ai"
	"github.com/gabai/gabai-backend/internal/api/middleware"
	"github.com/gabai/gabai-backend/internal/chat"
	"github.com/gabai/gabai-backend/internal/chat/attachment"
	"github.com/gabai/gabai-backend/internal/chat/mockai"
)

// ChatHandlers groups the message exchange endpoints.
type ChatHandlers struct {
	chats    *chat.Manager
	resolver *mockai.Resolver
	ai       *ai.Client
	log      *logrus.Entry
}

// NewChatHandlers creates the chat handler group.
func NewChatHandlers(chats *chat.Manager, resolver *mockai.Resolver, aiClient *ai.Client) *ChatHandlers {
	return &ChatHandlers{
		chats:    chats,
		resolver: resolver,
		ai:       aiClient,
		log:      logrus.WithField("component", "chat.handlers"),
	}
}

// SendMessage appends a user message (with any uploaded attachments) to a
// session, resolves the assistant reply and appends it. The reply is
// dropped, not resurrected, if the session was deleted while the resolver's
// artificial delay was running.
func (h *ChatHandlers) SendMessage(c *fiber.Ctx) error {
	userContext := middleware.GetUserContext(c)
	if userContext == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	store, err := h.chats.ForUser(c.Context(), userContext.UserID.String())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	text := c.FormValue("text")
	sessionID := c.FormValue("session_id")
	if sessionID == "" {
		// JSON body path, used when there are no file uploads.
		var req struct {
			SessionID string `json:"session_id"`
			Text      string `json:"text"`
		}
		if err := c.BodyParser(&req); err == nil {
			if req.SessionID != "" {
				sessionID = req.SessionID
			}
			if req.Text != "" {
				text = req.Text
			}
		}
	}
	if sessionID == "" {
		sessionID = store.CurrentSessionID()
	}

	attachments, attachErrors := h.collectAttachments(c)
	if text == "" && len(attachments) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message text or attachment required"})
	}

	userMsg := chat.NewMessage(text, chat.SenderUser, attachments)
	if err := store.AppendMessage(c.Context(), sessionID, userMsg); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	replyText, err := h.reply(c.Context(), store, sessionID, text)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	botMsg := chat.NewMessage(replyText, chat.SenderBot, nil)
	if err := store.AppendMessage(c.Context(), sessionID, botMsg); err != nil {
		// Session deleted during the resolver delay; the reply is dropped.
		h.log.WithField("session_id", sessionID).Info("session deleted before reply, dropping response")
		return c.JSON(fiber.Map{
			"message":           userMsg,
			"reply":             nil,
			"attachment_errors": attachErrors,
		})
	}

	return c.JSON(fiber.Map{
		"message":           userMsg,
		"reply":             botMsg,
		"attachment_errors": attachErrors,
	})
}

// reply resolves the assistant response, preferring the live backend when
// configured and degrading to the mock resolver on failure.
func (h *ChatHandlers) reply(ctx context.Context, store *chat.Store, sessionID, text string) (string, error) {
	if h.ai != nil && h.ai.Enabled() {
		session, err := store.Session(sessionID)
		if err == nil {
			history := make([]ai.Message, 0, len(session.Messages))
			for _, m := range session.Messages {
				role := "user"
				if m.Sender == chat.SenderBot {
					role = "assistant"
				}
				history = append(history, ai.Message{Role: role, Content: m.Text})
			}
			reply, err := h.ai.GenerateResponse(ctx, history, "")
			if err == nil {
				return reply, nil
			}
			h.log.WithError(err).Warn("live AI failed, falling back to mock resolver")
		}
	}
	return h.resolver.Resolve(ctx, text)
}

// collectAttachments encodes any multipart file uploads. A failed file
// yields an error entry without aborting its siblings.
func (h *ChatHandlers) collectAttachments(c *fiber.Ctx) ([]chat.Attachment, []string) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	var files []attachment.File
	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()

	var errors []string
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			errors = append(errors, fh.Filename+": "+err.Error())
			continue
		}
		closers = append(closers, f)
		files = append(files, attachment.File{
			Name:   fh.Filename,
			MIME:   fh.Header.Get("Content-Type"),
			Reader: f,
		})
	}

	var attachments []chat.Attachment
	for _, res := range attachment.EncodeAll(files) {
		if res.Err != nil {
			errors = append(errors, res.Name+": "+res.Err.Error())
			continue
		}
		attachments = append(attachments, res.Attachment)
	}
	return attachments, errors
}

// Transcribe converts uploaded audio to text via the live backend.
func (h *ChatHandlers) Transcribe(c *fiber.Ctx) error {
	userContext := middleware.GetUserContext(c)
	if userContext == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Audio file required"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read audio file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read audio file"})
	}

	text, err := h.ai.TranscribeAudio(c.Context(), fh.Filename, data)
	if err != nil {
		if err == ai.ErrNotConfigured {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Transcription is not available"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Transcription failed"})
	}

	return c.JSON(fiber.Map{"text": text})
}

// wsInbound is one client frame on the chat socket.
type wsInbound struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// wsEvent is one server frame: a typing indicator or a resolved message.
type wsEvent struct {
	Type      string        `json:"type"` // "typing" or "message"
	SessionID string        `json:"session_id"`
	Message   *chat.Message `json:"message,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// StreamChat serves the websocket chat: for each inbound message it emits
// a typing event, then the resolved reply, so the client can animate the
// indicator for the duration of the artificial delay.
func (h *ChatHandlers) StreamChat(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	if userID == "" {
		conn.WriteJSON(wsEvent{Type: "message", Error: "not authenticated"})
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := h.chats.ForUser(ctx, userID)
	if err != nil {
		conn.WriteJSON(wsEvent{Type: "message", Error: err.Error()})
		conn.Close()
		return
	}

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		if in.SessionID == "" {
			in.SessionID = store.CurrentSessionID()
		}

		userMsg := chat.NewMessage(in.Text, chat.SenderUser, nil)
		if err := store.AppendMessage(ctx, in.SessionID, userMsg); err != nil {
			conn.WriteJSON(wsEvent{Type: "message", SessionID: in.SessionID, Error: "session not found"})
			continue
		}
		conn.WriteJSON(wsEvent{Type: "message", SessionID: in.SessionID, Message: &userMsg})
		conn.WriteJSON(wsEvent{Type: "typing", SessionID: in.SessionID})

		replyText, err := h.reply(ctx, store, in.SessionID, in.Text)
		if err != nil {
			conn.WriteJSON(wsEvent{Type: "message", SessionID: in.SessionID, Error: err.Error()})
			continue
		}

		botMsg := chat.NewMessage(replyText, chat.SenderBot, nil)
		if err := store.AppendMessage(ctx, in.SessionID, botMsg); err != nil {
			// Session deleted mid-delay; nothing to deliver to.
			continue
		}
		conn.WriteJSON(wsEvent{Type: "message", SessionID: in.SessionID, Message: &botMsg})
	}
}

// Health is a liveness probe.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "gabai-backend",
		"time":    time.Now().UTC(),
	})
}
