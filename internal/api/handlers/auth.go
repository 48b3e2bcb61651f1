package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gabai/gabai-backend/internal/api/middleware"
	"github.com/gabai/gabai-backend/internal/auth"
	"github.com/gabai/gabai-backend/internal/chat"
)

// AuthHandlers groups the authentication endpoints.
type AuthHandlers struct {
	auth  *auth.Service
	chats *chat.Manager
}

// NewAuthHandlers creates the auth handler group.
func NewAuthHandlers(authService *auth.Service, chats *chat.Manager) *AuthHandlers {
	return &AuthHandlers{auth: authService, chats: chats}
}

// Signup registers a new account.
func (h *AuthHandlers) Signup(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Email == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and name are required",
		})
	}

	user, err := h.auth.SignUp(c.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch err {
		case auth.ErrEmailAlreadyExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case auth.ErrPasswordTooShort, auth.ErrPasswordTooWeak:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login authenticates and returns a token pair.
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, accessToken, refreshToken, err := h.auth.Login(c.Context(), req.Email, req.Password, c.IP(), c.Get("User-Agent"))
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials, auth.ErrUserInactive:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
		}
	}

	return c.JSON(fiber.Map{
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh exchanges a refresh token for a new pair.
func (h *AuthHandlers) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Refresh token required",
		})
	}

	accessToken, refreshToken, err := h.auth.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid refresh token"})
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout revokes the current login session and releases the user's
// in-memory chat store.
func (h *AuthHandlers) Logout(c *fiber.Ctx) error {
	token := auth.ExtractTokenFromBearer(c.Get("Authorization"))
	if token == "" {
		token = c.Cookies("access_token")
	}

	if err := h.auth.Logout(c.Context(), token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Logout failed"})
	}

	if userContext := middleware.GetUserContext(c); userContext != nil {
		h.chats.Release(userContext.UserID.String())
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandlers) Me(c *fiber.Ctx) error {
	userContext := middleware.GetUserContext(c)
	if userContext == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	user, err := h.auth.GetUser(c.Context(), userContext.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// UpdateProfile updates the authenticated user's editable fields.
func (h *AuthHandlers) UpdateProfile(c *fiber.Ctx) error {
	userContext := middleware.GetUserContext(c)
	if userContext == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	var req struct {
		Name       string `json:"name"`
		AvatarURL  string `json:"avatar_url"`
		Department string `json:"department"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.auth.UpdateProfile(c.Context(), userContext.UserID, req.Name, req.AvatarURL, req.Department)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(user)
}

// ChangePassword verifies the current password and sets a new one.
func (h *AuthHandlers) ChangePassword(c *fiber.Ctx) error {
	userContext := middleware.GetUserContext(c)
	if userContext == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.auth.ChangePassword(c.Context(), userContext.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Current password is incorrect"})
		case auth.ErrPasswordTooShort, auth.ErrPasswordTooWeak:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to change password"})
		}
	}

	return c.JSON(fiber.Map{"message": "Password changed"})
}
