package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/PolymerLabs/project-health-sub001/internal/api"
	"github.com/PolymerLabs/project-health-sub001/internal/mapper"
)

// PostPushSubscriptionAdd registers a push endpoint for a user.
func (h *Handler) PostPushSubscriptionAdd(c *fiber.Ctx) error {
	var body api.PostPushSubscriptionAddJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
	}

	if err := h.uc.AddSubscription(c.Context(), mapper.FromAPISubscription(body)); err != nil {
		h.log.Infow(err.Error())
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusCreated)
}

// PostPushSubscriptionRemove deletes a stored push endpoint.
func (h *Handler) PostPushSubscriptionRemove(c *fiber.Ctx) error {
	var body api.PostPushSubscriptionRemoveJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
	}

	if err := h.uc.RemoveSubscription(c.Context(), body.Login, body.Endpoint); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
