// handlers/users.go
package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/middleware"
	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/services"
)

type profileRequest struct {
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	DisplayName string        `json:"display_name"`
	Birthday    *time.Time    `json:"birthday"`
	Gender      models.Gender `json:"gender"`
	Address     string        `json:"address"`
	Zipcode     string        `json:"zipcode"`
	City        string        `json:"city"`
	PhoneNumber string        `json:"phone_number"`
	Notes       string        `json:"notes"`
}

func (r *profileRequest) toInput() services.ProfileInput {
	return services.ProfileInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DisplayName: r.DisplayName,
		Birthday:    r.Birthday,
		Gender:      r.Gender,
		Address:     r.Address,
		Zipcode:     r.Zipcode,
		City:        r.City,
		PhoneNumber: r.PhoneNumber,
		Notes:       r.Notes,
	}
}

// RegisterUser creates a new account.
// POST /users
func RegisterUser(c *fiber.Ctx) error {
	var req struct {
		Username string          `json:"username"`
		Email    string          `json:"email"`
		Password string          `json:"password"`
		Profile  *profileRequest `json:"profile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var profile *services.ProfileInput
	if req.Profile != nil {
		p := req.Profile.toInput()
		profile = &p
	}

	user, err := userService.Create(services.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}, profile)
	if err != nil {
		return fail(c, err)
	}
	return created(c, fmt.Sprintf("/users/%d", user.ID), user)
}

// GetUsers lists every account.
// GET /users (admin)
func GetUsers(c *fiber.Ctx) error {
	users, err := userService.GetAll(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, users)
}

// GetUser returns one account.
// GET /users/:id (self or admin)
func GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	user, err := userService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// ReplaceUser swaps username, email and password.
// PUT /users/:id (self or admin)
func ReplaceUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	user, err := userService.Replace(middleware.CurrentUser(c), id, services.UserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// ReplaceProfile replaces every profile field at once.
// PUT /users/:id/profile (self or admin)
func ReplaceProfile(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	user, err := userService.ReplaceProfile(middleware.CurrentUser(c), id, req.toInput())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, user)
}

// DisableUser locks the account. Accounts are never hard-deleted.
// DELETE /users/:id (admin)
func DisableUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := userService.Lock(middleware.CurrentUser(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "User disabled"})
}

// GetCurrentUser returns the logged-in account, or a plain "not logged
// in" body for anonymous callers.
// GET /users/current
func GetCurrentUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Not logged in",
		})
	}
	return ok(c, user)
}

// GetCurrentUserTeams lists every team the caller is on.
// GET /users/current/teams
func GetCurrentUserTeams(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	teams, err := teamService.TeamsForUser(user.Username)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, teams)
}

// GetCurrentUserInvites lists the caller's outstanding team invites.
// GET /users/current/invites
func GetCurrentUserInvites(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	invites, err := teamService.UserInvites(user.Username)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, invites)
}

// GetCurrentUserOrders lists the caller's orders.
// GET /users/current/orders
func GetCurrentUserOrders(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	orders, err := orderService.OrdersForUser(user.ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, orders)
}

// CheckUsername reports username availability, case-insensitively.
// GET /users/check-username?username=
func CheckUsername(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		return badRequest(c, "Missing username")
	}
	available, err := userService.UsernameAvailable(username)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"available": available,
	})
}

// CheckEmail reports email availability, case-insensitively.
// GET /users/check-email?email=
func CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return badRequest(c, "Missing email")
	}
	available, err := userService.EmailAvailable(email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"available": available,
	})
}
