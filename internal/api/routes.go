package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/gabai/gabai-backend/internal/api/handlers"
	"github.com/gabai/gabai-backend/internal/api/middleware"
	"github.com/gabai/gabai-backend/internal/auth"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Auth    *handlers.AuthHandlers
	Campus  *handlers.CampusHandlers
	Session *handlers.SessionHandlers
	Chat    *handlers.ChatHandlers
	Users   *handlers.UserHandlers
	Dataset *handlers.DatasetHandlers
}

// SetupRoutes configures all API routes.
func SetupRoutes(app *fiber.App, h Handlers, authService *auth.Service) {
	api := app.Group("/api/v1")

	// ========================================
	// Public routes (no authentication needed)
	// ========================================

	api.Get("/health", handlers.Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", h.Auth.Signup)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.Refresh)
	authGroup.Post("/logout", middleware.AuthRequired(authService), h.Auth.Logout)

	// Campus directory is public read-only
	api.Get("/departments", h.Campus.ListDepartments)
	api.Get("/departments/:id", h.Campus.GetDepartment)
	api.Get("/courses", h.Campus.ListCourses)
	api.Get("/courses/:id", h.Campus.GetCourse)
	api.Get("/scholarships", h.Campus.ListScholarships)
	api.Get("/scholarships/:id", h.Campus.GetScholarship)
	api.Get("/faculty", h.Campus.ListFaculty)
	api.Get("/faculty/:id", h.Campus.GetFaculty)
	api.Get("/map-locations", h.Campus.ListMapLocations)
	api.Get("/map-locations/:id", h.Campus.GetMapLocation)

	// ========================================
	// Protected routes (authentication required)
	// ========================================

	protected := api.Group("", middleware.AuthRequired(authService))

	protected.Get("/auth/me", h.Auth.Me)
	protected.Put("/auth/profile", h.Auth.UpdateProfile)
	protected.Put("/auth/password", h.Auth.ChangePassword)

	// Chat session management
	protected.Get("/sessions", h.Session.ListSessions)
	protected.Post("/sessions", h.Session.CreateSession)
	protected.Get("/sessions/:id", h.Session.GetSession)
	protected.Get("/sessions/:id/messages", h.Session.GetSessionMessages)
	protected.Post("/sessions/:id/open", h.Session.OpenSession)
	protected.Delete("/sessions/:id", h.Session.DeleteSession)
	protected.Post("/sessions/current/clear", h.Session.ClearCurrentSession)

	// Chat
	protected.Post("/chat", h.Chat.SendMessage)
	protected.Post("/chat/transcribe", h.Chat.Transcribe)

	// ========================================
	// Admin routes (campus content management)
	// ========================================

	admin := protected.Group("", middleware.RequireRole(authService, "admin"))
	admin.Post("/departments", h.Campus.CreateDepartment)
	admin.Put("/departments/:id", h.Campus.UpdateDepartment)
	admin.Delete("/departments/:id", h.Campus.DeleteDepartment)
	admin.Post("/courses", h.Campus.CreateCourse)
	admin.Put("/courses/:id", h.Campus.UpdateCourse)
	admin.Delete("/courses/:id", h.Campus.DeleteCourse)
	admin.Post("/scholarships", h.Campus.CreateScholarship)
	admin.Put("/scholarships/:id", h.Campus.UpdateScholarship)
	admin.Delete("/scholarships/:id", h.Campus.DeleteScholarship)
	admin.Post("/faculty", h.Campus.CreateFaculty)
	admin.Put("/faculty/:id", h.Campus.UpdateFaculty)
	admin.Delete("/faculty/:id", h.Campus.DeleteFaculty)
	admin.Post("/map-locations", h.Campus.CreateMapLocation)
	admin.Put("/map-locations/:id", h.Campus.UpdateMapLocation)
	admin.Delete("/map-locations/:id", h.Campus.DeleteMapLocation)

	// Account management
	admin.Get("/users", h.Users.ListUsers)
	admin.Post("/users", h.Users.CreateUser)
	admin.Put("/users/:id", h.Users.UpdateUser)
	admin.Delete("/users/:id", h.Users.DeleteUser)

	// Knowledge-base datasets
	admin.Get("/datasets", h.Dataset.ListDatasets)
	admin.Post("/datasets", h.Dataset.UploadDataset)
	admin.Delete("/datasets/:id", h.Dataset.DeleteDataset)

	// ========================================
	// WebSocket routes (with auth)
	// ========================================

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			// Validate auth token from query param or header
			token := c.Query("token")
			if token == "" {
				token = auth.ExtractTokenFromBearer(c.Get("Authorization"))
			}

			if token != "" {
				user, claims, err := authService.ValidateAccessToken(c.Context(), token)
				if err == nil {
					c.Locals("user", user)
					c.Locals("claims", claims)
					c.Locals("user_id", user.ID.String())
					c.Locals("allowed", true)
					return c.Next()
				}
			}

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required for WebSocket",
			})
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/chat", websocket.New(h.Chat.StreamChat))
}
