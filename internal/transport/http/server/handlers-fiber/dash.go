package handlers_fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/PolymerLabs/project-health-sub001/internal/api"
	"github.com/PolymerLabs/project-health-sub001/internal/mapper"
)

// GetDashOutgoing returns the viewer's own PRs.
func (h *Handler) GetDashOutgoing(c *fiber.Ctx) error {
	login, ok := loginParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "login query parameter is required"))
	}

	snap, err := h.uc.OutgoingDash(c.Context(), login)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIDash(snap))
}

// GetDashIncoming returns the PRs the viewer reviews.
func (h *Handler) GetDashIncoming(c *fiber.Ctx) error {
	login, ok := loginParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "login query parameter is required"))
	}

	snap, err := h.uc.IncomingDash(c.Context(), login)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPIDash(snap))
}

// GetDashIssues returns the issues involving the viewer.
func (h *Handler) GetDashIssues(c *fiber.Ctx) error {
	login, ok := loginParam(c)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "login query parameter is required"))
	}

	issues, err := h.uc.IssuesDash(c.Context(), login)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(api.IssuesResponse{
		User:   login,
		Issues: mapper.ToAPIIssueList(issues),
	})
}

// PostDashViewed resets the viewed baseline for a user.
func (h *Handler) PostDashViewed(c *fiber.Ctx) error {
	var body api.PostDashViewedJSONRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.INVALIDARGUMENT, "invalid body"))
	}

	if err := h.uc.MarkViewed(c.Context(), body.Login); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
