package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/starproof/dashboard-api/internal/config"
	"github.com/starproof/dashboard-api/internal/http/handlers"
	"github.com/starproof/dashboard-api/internal/middleware"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	sessionHandler *handlers.SessionHandler,
	userHandler *handlers.UserHandler,
	credentialHandler *handlers.CredentialHandler,
	customizationHandler *handlers.CustomizationHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Session (public)
	api.Post("/session/connect", sessionHandler.Connect)
	api.Get("/session/wallets", sessionHandler.Wallets)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Meta + verification (public, no session required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/categories", metaHandler.GetCategories)
	api.Get("/credentials/verify", credentialHandler.Verify)
	api.Get("/backend/health", credentialHandler.BackendHealth)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	protected.Get("/session", sessionHandler.Status)
	protected.Delete("/session", sessionHandler.Disconnect)

	// Profile + API key lifecycle
	protected.Get("/me", userHandler.GetMe)
	protected.Post("/me/api-key", userHandler.GenerateAPIKey)
	protected.Post("/me/api-key/rotate", userHandler.RotateAPIKey)
	protected.Delete("/me/api-key", userHandler.RevokeAPIKey)

	// Credentials
	protected.Post("/credentials", credentialHandler.Create)
	protected.Get("/credentials", credentialHandler.List)

	// Shared presentation preferences
	protected.Get("/customization", customizationHandler.Get)
	protected.Put("/customization", customizationHandler.Put)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
