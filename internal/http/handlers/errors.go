package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/starproof/dashboard-api/internal/apperrors"
	"github.com/starproof/dashboard-api/internal/http/dto"
	"github.com/starproof/dashboard-api/internal/middleware"
)

// writeError maps the error taxonomy onto HTTP statuses. Every branch is a
// transient user-facing failure; the caller may simply retry the action.
func writeError(c *fiber.Ctx, err error) error {
	reqID, _ := c.Locals(middleware.CtxRequestID).(string)
	body := dto.ErrorResponse{Error: err.Error(), RequestID: reqID}

	var (
		validation  *apperrors.ValidationError
		unavailable *apperrors.BackendUnavailableError
		rejected    *apperrors.RequestRejectedError
		persistence *apperrors.PersistenceError
		malformed   *apperrors.MalformedResponseError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.As(err, &unavailable):
		return c.Status(fiber.StatusBadGateway).JSON(body)
	case errors.As(err, &rejected):
		status := rejected.StatusCode
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(body)
	case errors.As(err, &malformed):
		return c.Status(fiber.StatusBadGateway).JSON(body)
	case errors.As(err, &persistence):
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
