package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/PolymerLabs/project-health-sub001/internal/api"
)

// PostWebhook accepts an upstream activity report.
func (h *Handler) PostWebhook(c *fiber.Ctx) error {
	var body api.PostWebhookJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
	}

	if err := h.uc.RecordActivity(c.Context(), body.Logins, body.Timestamp); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusAccepted)
}
