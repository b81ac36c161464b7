package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func LoggerMiddleware(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		reqID, _ := c.Locals(CtxRequestID).(string)
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if wallet := GetWalletAddress(c); wallet != "" {
			fields = append(fields, zap.String("wallet", wallet))
		}
		if walletID := GetWalletID(c); walletID != "" {
			fields = append(fields, zap.String("wallet_id", walletID))
		}
		log.Info("request", fields...)

		return err
	}
}
