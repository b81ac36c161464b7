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

type CredentialHandler struct {
	credentialService *services.CredentialService
	userService       *services.UserService
	log               *zap.Logger
}

func NewCredentialHandler(
	credentialService *services.CredentialService,
	userService *services.UserService,
	log *zap.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialService: credentialService,
		userService:       userService,
		log:               log,
	}
}

// Create issues one credential under the wallet's API key.
// POST /credentials
func (h *CredentialHandler) Create(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)

	var req dto.CreateCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	profile, err := h.userService.GetProfile(c.Context(), address)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	if err != nil {
		return writeError(c, err)
	}
	if !profile.HasAPIKey || profile.APIKey == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "an API key is required before creating credentials",
		})
	}

	result, err := h.credentialService.Issue(c.Context(), address, services.CreateCredentialRequest{
		Holder:      req.Holder,
		Category:    req.Category,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
		Claims:      req.Claims,
		Schema:      req.Schema,
	}, *profile.APIKey, req.Customization)
	if err != nil {
		h.log.Debug("credential issuance failed", zap.Error(err))
		return writeError(c, err)
	}

	return c.JSON(dto.CreateCredentialResponse{
		OK:         true,
		Credential: result.Credential,
		OnChain:    result.OnChain,
		Message:    result.Message,
	})
}

// List returns the wallet's locally recorded credentials, newest first.
// GET /credentials
func (h *CredentialHandler) List(c *fiber.Ctx) error {
	address := middleware.GetWalletAddress(c)
	list, err := h.credentialService.ListIssued(c.Context(), address)
	if err != nil {
		h.log.Error("failed to load credential list", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: list})
}

// Verify proxies a verification lookup to the issuance backend.
// GET /credentials/verify?id=&issuer=
func (h *CredentialHandler) Verify(c *fiber.Ctx) error {
	id := c.Query("id")
	issuer := c.Query("issuer")

	result, err := h.credentialService.Verify(c.Context(), id, issuer)
	if err != nil {
		h.log.Debug("credential verification failed", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(result)
}

// BackendHealth reports whether the issuance backend is reachable.
// GET /backend/health
func (h *CredentialHandler) BackendHealth(c *fiber.Ctx) error {
	return c.JSON(h.credentialService.BackendHealth(c.Context()))
}
