package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gabai/gabai-backend/internal/auth"
	"github.com/gabai/gabai-backend/internal/models"
)

// AuthConfig holds the auth middleware configuration
type AuthConfig struct {
	AuthService *auth.Service
	Optional    bool   // If true, auth is optional (doesn't fail if no token)
	RequireRole string // If set, requires specific role
}

// AuthRequired creates a middleware that requires authentication
func AuthRequired(authService *auth.Service) fiber.Handler {
	return AuthMiddleware(AuthConfig{
		AuthService: authService,
		Optional:    false,
	})
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(authService *auth.Service, role string) fiber.Handler {
	return AuthMiddleware(AuthConfig{
		AuthService: authService,
		Optional:    false,
		RequireRole: role,
	})
}

// AuthMiddleware is the main authentication middleware
func AuthMiddleware(config AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.ExtractTokenFromBearer(c.Get("Authorization"))

		// Also check for token in cookie (for web clients)
		if token == "" {
			token = c.Cookies("access_token")
		}

		if token == "" {
			if config.Optional {
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		user, claims, err := config.AuthService.ValidateAccessToken(c.Context(), token)
		if err != nil {
			if config.Optional {
				return c.Next()
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		if config.RequireRole != "" && user.Role != config.RequireRole {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Insufficient permissions",
			})
		}

		c.Locals("user", user)
		c.Locals("claims", claims)
		c.Locals("user_context", &models.UserContext{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Role:   user.Role,
		})

		return c.Next()
	}
}

// GetUserContext retrieves the user context from the fiber context
func GetUserContext(c *fiber.Ctx) *models.UserContext {
	if ctx := c.Locals("user_context"); ctx != nil {
		if userContext, ok := ctx.(*models.UserContext); ok {
			return userContext
		}
	}
	return nil
}
