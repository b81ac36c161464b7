package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/starproof/dashboard-api/internal/http/dto"
	"github.com/starproof/dashboard-api/internal/middleware"
	"github.com/starproof/dashboard-api/internal/repositories"
	"github.com/starproof/dashboard-api/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// GetMe returns the profile for the session's wallet.
// GET /me
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)
	profile, err := h.userService.GetProfile(c.Context(), address)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	if err != nil {
		h.log.Error("failed to load profile", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}

// GenerateAPIKey mints the wallet's API key, overwriting any previous one.
// The plaintext is shown in this response and available on the profile.
// POST /me/api-key
func (h *UserHandler) GenerateAPIKey(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)
	key, err := h.userService.GenerateAPIKey(c.Context(), address)
	if err != nil {
		h.log.Error("api key generation failed", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(dto.APIKeyResponse{APIKey: key})
}

// RotateAPIKey replaces the active key; the old one dies immediately.
// POST /me/api-key/rotate
func (h *UserHandler) RotateAPIKey(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)
	key, err := h.userService.RegenerateAPIKey(c.Context(), address)
	if err != nil {
		h.log.Error("api key rotation failed", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(dto.APIKeyResponse{APIKey: key})
}

// RevokeAPIKey clears the active key. The profile row survives.
// DELETE /me/api-key
func (h *UserHandler) RevokeAPIKey(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)
	if err := h.userService.RevokeAPIKey(c.Context(), address); err != nil {
		h.log.Error("api key revocation failed", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
