package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/PolymerLabs/project-health-sub001/internal/api"
	"github.com/PolymerLabs/project-health-sub001/internal/entities"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.INTERNAL
	msg := err.Error()

	var fetchErr *entities.FetchFailed
	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = api.INVALIDARGUMENT
	case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrSubscriptionNotFound):
		status = http.StatusNotFound
		code = api.NOTFOUND
		msg = "resource not found"
	case errors.Is(err, entities.ErrPermissionDenied):
		status = http.StatusForbidden
		code = api.PERMISSIONDENIED
		msg = "permission denied"
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
		code = api.FETCHFAILED
		msg = fmt.Sprintf("upstream fetch failed at cursor %q", fetchErr.Cursor)
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code api.ErrorResponseErrorCode, msg string) api.ErrorResponse {
	return api.ErrorResponse{Error: struct {
		Code    api.ErrorResponseErrorCode `json:"code"`
		Message string                     `json:"message"`
	}{Code: code, Message: msg}}
}

func loginParam(c *fiber.Ctx) (string, bool) {
	login := c.Query("login")
	return login, login != ""
}
