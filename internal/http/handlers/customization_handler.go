package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/starproof/dashboard-api/internal/credcache"
	"github.com/starproof/dashboard-api/internal/http/dto"
	"github.com/starproof/dashboard-api/internal/models"
	"go.uber.org/zap"
)

// CustomizationHandler serves the single shared presentation-preferences
// object. It is deliberately not keyed by wallet address.
type CustomizationHandler struct {
	cache *credcache.Cache
	log   *zap.Logger
}

func NewCustomizationHandler(cache *credcache.Cache, log *zap.Logger) *CustomizationHandler {
	return &CustomizationHandler{cache: cache, log: log}
}

// Get returns the stored preferences, zero-valued when unset.
// GET /customization
func (h *CustomizationHandler) Get(c *fiber.Ctx) error {
	cust, err := h.cache.LoadCustomization(c.Context())
	if err != nil {
		h.log.Error("failed to load customization", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: cust})
}

// Put replaces the stored preferences.
// PUT /customization
func (h *CustomizationHandler) Put(c *fiber.Ctx) error {
	var req dto.UpdateCustomizationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	cust := models.Customization{
		Gradient: req.Gradient,
		Logo:     req.Logo,
		Template: req.Template,
	}
	if err := h.cache.SaveCustomization(c.Context(), cust); err != nil {
		h.log.Error("failed to save customization", zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: cust})
}
