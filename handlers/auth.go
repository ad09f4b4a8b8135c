// handlers/auth.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/middleware"
)

// Login exchanges credentials for an opaque token.
// POST /login
func Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	token, err := authService.Login(req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token.Token,
	})
}

// Logout invalidates the presented token.
// POST /logout
func Logout(c *fiber.Ctx) error {
	token := c.Get(middleware.TokenHeader)
	if token == "" {
		return badRequest(c, "Missing token")
	}
	if err := authService.Logout(token); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}
