package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/starproof/dashboard-api/internal/auth"
	"github.com/starproof/dashboard-api/internal/config"
	"go.uber.org/zap"
)

const (
	CtxWalletAddress = "wallet_address"
	CtxWalletID      = "wallet_id"
)

// AuthMiddleware resolves the active wallet address from the session token.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxWalletAddress, claims.WalletAddress)
		c.Locals(CtxWalletID, claims.WalletID)

		return c.Next()
	}
}

func GetWalletAddress(c *fiber.Ctx) string {
	addr, _ := c.Locals(CtxWalletAddress).(string)
	return addr
}

func GetWalletID(c *fiber.Ctx) string {
	id, _ := c.Locals(CtxWalletID).(string)
	return id
}
