package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/PolymerLabs/project-health-sub001/internal/api"
)

// GetSettings returns the stored settings document for a user.
func (h *Handler) GetSettings(c *fiber.Ctx) error {
	login, ok := loginParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "login query parameter is required"))
	}

	settings, err := h.uc.Settings(c.Context(), login)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.SettingsResponse{Settings: settings})
}

// PostSettings replaces the stored settings document for a user.
func (h *Handler) PostSettings(c *fiber.Ctx) error {
	var body api.PostSettingsJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
	}

	if err := h.uc.SaveSettings(c.Context(), body.Login, body.Settings); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
