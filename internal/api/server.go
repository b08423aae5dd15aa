package api

import "github.com/gofiber/fiber/v2"

// ServerInterface lists the handlers behind the dashboard routes.
type ServerInterface interface {
	GetDashOutgoing(c *fiber.Ctx) error
	GetDashIncoming(c *fiber.Ctx) error
	GetDashIssues(c *fiber.Ctx) error
	PostDashViewed(c *fiber.Ctx) error
	PostPushSubscriptionAdd(c *fiber.Ctx) error
	PostPushSubscriptionRemove(c *fiber.Ctx) error
	GetSettings(c *fiber.Ctx) error
	PostSettings(c *fiber.Ctx) error
	PostWebhook(c *fiber.Ctx) error
}

// RegisterHandlers binds the dashboard routes onto app.
func RegisterHandlers(app *fiber.App, si ServerInterface) {
	app.Get("/api/dash/outgoing", si.GetDashOutgoing)
	app.Get("/api/dash/incoming", si.GetDashIncoming)
	app.Get("/api/dash/issues", si.GetDashIssues)
	app.Post("/api/dash/viewed", si.PostDashViewed)
	app.Post("/api/push-subscription/add", si.PostPushSubscriptionAdd)
	app.Post("/api/push-subscription/remove", si.PostPushSubscriptionRemove)
	app.Get("/api/settings", si.GetSettings)
	app.Post("/api/settings", si.PostSettings)
	app.Post("/api/webhook", si.PostWebhook)
}
