// handlers/subscriptions.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/middleware"
)

// Subscribe adds an email to the newsletter list. No account needed.
// POST /subscriptions
func Subscribe(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return badRequest(c, "Missing email")
	}
	sub, err := subscriptionService.Subscribe(req.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sub,
	})
}

// Unsubscribe removes an email from the list.
// DELETE /subscriptions
func Unsubscribe(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return badRequest(c, "Missing email")
	}
	if err := subscriptionService.Unsubscribe(req.Email); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "Unsubscribed"})
}

// GetSubscriptions lists every opt-in.
// GET /subscriptions (admin)
func GetSubscriptions(c *fiber.Ctx) error {
	subs, err := subscriptionService.GetAll(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, subs)
}
