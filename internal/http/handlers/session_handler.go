package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/starproof/dashboard-api/internal/http/dto"
	"github.com/starproof/dashboard-api/internal/middleware"
	"github.com/starproof/dashboard-api/internal/services"
	"go.uber.org/zap"
)

type SessionHandler struct {
	walletService *services.WalletService
	log           *zap.Logger
}

func NewSessionHandler(walletService *services.WalletService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{walletService: walletService, log: log}
}

// Connect binds a wallet address to a session token.
// POST /session/connect
func (h *SessionHandler) Connect(c *fiber.Ctx) error {
	var req dto.ConnectWalletRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.walletService.Connect(c.Context(), req.Address, req.WalletID)
	if err != nil {
		h.log.Debug("wallet connect failed", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: result})
}

// Status reports whether the session's wallet still has a live server-side
// marker, and through which provider it connected.
// GET /session
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.walletService.Status(c.Context(), address)})
}

// Disconnect ends the active wallet session.
// DELETE /session
func (h *SessionHandler) Disconnect(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)
	if err := h.walletService.Disconnect(c.Context(), address); err != nil {
		h.log.Error("wallet disconnect failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to disconnect wallet"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// Wallets lists the supported wallet providers.
// GET /session/wallets
func (h *SessionHandler) Wallets(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.walletService.SupportedWallets()})
}
