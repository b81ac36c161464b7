package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/starproof/dashboard-api/internal/config"
	"github.com/starproof/dashboard-api/internal/credcache"
	"github.com/starproof/dashboard-api/internal/db"
	"github.com/starproof/dashboard-api/internal/events"
	apphttp "github.com/starproof/dashboard-api/internal/http"
	"github.com/starproof/dashboard-api/internal/http/handlers"
	"github.com/starproof/dashboard-api/internal/repositories"
	"github.com/starproof/dashboard-api/internal/services"
	"github.com/starproof/dashboard-api/internal/stellar"
	"github.com/starproof/dashboard-api/internal/walletkit"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Wallet kit
	network := stellar.ResolveNetwork(cfg.NetworkPassphrase, log)
	kit := walletkit.New(network)
	log.Info("wallet kit initialized", zap.String("network", string(network)))

	// Repositories
	userRepo := repositories.NewUserRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	userService := services.NewUserService(userRepo, publisher, cfg, log)
	walletService := services.NewWalletService(kit, userService, rdb, publisher, cfg, log)
	backendClient := services.NewStarProofClient(cfg.BackendAPIURL, cfg.BackendTimeout, log)
	log.Info("issuance backend configured", zap.String("base_url", backendClient.BaseURL()))
	cache := credcache.NewCache(credcache.NewRedisKV(rdb), log)
	credentialService := services.NewCredentialService(backendClient, cache, publisher, log)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(walletService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	credentialHandler := handlers.NewCredentialHandler(credentialService, userService, log)
	customizationHandler := handlers.NewCustomizationHandler(cache, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, sessionHandler, userHandler, credentialHandler, customizationHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
