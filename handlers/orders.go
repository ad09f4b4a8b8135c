// handlers/orders.go
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/middleware"
)

type ticketRequest struct {
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

// CreateOrder starts a new anonymous order holding one ticket. The order
// stays unowned until an explicit assign, regardless of who calls this.
// POST /orders
func CreateOrder(c *fiber.Ctx) error {
	var req ticketRequest
	if err := c.BodyParser(&req); err != nil || req.Type == "" {
		return badRequest(c, "Missing ticket type")
	}
	order, err := orderService.Create(req.Type, req.Options)
	if err != nil {
		return fail(c, err)
	}
	return created(c, fmt.Sprintf("/orders/%d", order.ID), order)
}

// GetOrders lists every order.
// GET /orders (admin)
func GetOrders(c *fiber.Ctx) error {
	orders, err := orderService.GetAll(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, orders)
}

// GetOrder returns one order with its tickets and amount.
// GET /orders/:id
func GetOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := orderService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

// AddTicketToOrder puts one more ticket on an open order.
// POST /orders/:id
func AddTicketToOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req ticketRequest
	if err := c.BodyParser(&req); err != nil || req.Type == "" {
		return badRequest(c, "Missing ticket type")
	}
	order, err := orderService.AddTicket(middleware.CurrentUser(c), id, req.Type, req.Options)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

// AssignOrder binds an anonymous order to the caller.
// POST /orders/:id/assign (authed)
func AssignOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := orderService.Assign(middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

// CheckoutOrder freezes the order for payment.
// POST /orders/:id/checkout (owner or admin)
func CheckoutOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := orderService.Checkout(middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

// ApproveOrder confirms payment and validates the tickets.
// POST /orders/:id/approve (admin)
func ApproveOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	order, err := orderService.Approve(middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, order)
}

// GetTicketTypes lists the types still on sale.
// GET /tickets/types
func GetTicketTypes(c *fiber.Ctx) error {
	types, err := orderService.TicketTypes()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, types)
}
