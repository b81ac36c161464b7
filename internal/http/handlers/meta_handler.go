package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/starproof/dashboard-api/internal/http/dto"
	"github.com/starproof/dashboard-api/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// GetCategories lists the credential categories the form offers.
// GET /meta/categories
func (h *MetaHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: models.Categories})
}
