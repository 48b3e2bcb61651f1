package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gabai/gabai-backend/internal/api/middleware"
	"github.com/gabai/gabai-backend/internal/chat"
)

// SessionHandlers groups the chat session management endpoints. Each
// request resolves the caller's shared store through the manager, so the
// chat view and the history view always see the same state.
type SessionHandlers struct {
	chats *chat.Manager
}

// NewSessionHandlers creates the session handler group.
func NewSessionHandlers(chats *chat.Manager) *SessionHandlers {
	return &SessionHandlers{chats: chats}
}

func (h *SessionHandlers) store(c *fiber.Ctx) (*chat.Store, error) {
	userContext := middleware.GetUserContext(c)
	if userContext == nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}
	store, err := h.chats.ForUser(c.Context(), userContext.UserID.String())
	if err != nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return store, nil
}

// ListSessions returns all sessions plus the current-session pointer.
func (h *SessionHandlers) ListSessions(c *fiber.Ctx) error {
	store, err := h.store(c)
	if store == nil {
		return err
	}

	return c.JSON(fiber.Map{
		"sessions":           store.Sessions(),
		"current_session_id": store.CurrentSessionID(),
	})
}

// CreateSession starts a new conversation and makes it current.
func (h *SessionHandlers) CreateSession(c *fiber.Ctx) error {
	store, err := h.store(c)
	if store == nil {
		return err
	}

	id, err := store.CreateNewSession(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := store.Session(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetSession returns one session.
func (h *SessionHandlers) GetSession(c *fiber.Ctx) error {
	store, err := h.store(c)
	if store == nil {
		return err
	}

	session, err := store.Session(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(session)
}

// GetSessionMessages returns the ordered messages of one session.
func (h *SessionHandlers) GetSessionMessages(c *fiber.Ctx) error {
	store, err := h.store(c)
	if store == nil {
		return err
	}

	session, err := store.Session(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(fiber.Map{"messages": session.Messages})
}

// OpenSession moves the current-session pointer.
func (h *SessionHandlers) OpenSession(c *fiber.Ctx) error {
	store, err := h.store(c)
	if store == nil {
		return err
	}

	if err := store.LoadSession(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(fiber.Map{"current_session_id": store.CurrentSessionID()})
}

// DeleteSession removes a session. Confirmation happens at the UI
// boundary; reaching this endpoint is the explicit call.
func (h *SessionHandlers) DeleteSession(c *fiber.Ctx) error {
	store, err := h.store(c)
	if store == nil {
		return err
	}

	if err := store.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(fiber.Map{
		"message":            "Session deleted successfully",
		"current_session_id": store.CurrentSessionID(),
	})
}

// ClearCurrentSession resets the current session to a fresh greeting.
func (h *SessionHandlers) ClearCurrentSession(c *fiber.Ctx) error {
	store, err := h.store(c)
	if store == nil {
		return err
	}

	if err := store.ClearCurrentSession(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := store.CurrentSession()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(session)
}
