// handlers/rfid.go - entrance-desk wristband endpoints, all admin only
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/middleware"
)

// GetRFIDLinks lists every wristband link.
// GET /rfid
func GetRFIDLinks(c *fiber.Ctx) error {
	links, err := rfidService.GetAll(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, links)
}

// GetRFIDLink resolves a band to its ticket.
// GET /rfid/:rfid
func GetRFIDLink(c *fiber.Ctx) error {
	link, err := rfidService.Get(middleware.CurrentUser(c), c.Params("rfid"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, link)
}

// LinkRFID couples a band to a valid ticket.
// POST /rfid
func LinkRFID(c *fiber.Ctx) error {
	var req struct {
		RFID     string `json:"rfid"`
		TicketID uint   `json:"ticket_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.RFID == "" {
		return badRequest(c, "Missing rfid")
	}
	link, err := rfidService.Link(middleware.CurrentUser(c), req.RFID, req.TicketID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    link,
	})
}

// UnlinkRFID frees the band and reports which ticket it held.
// DELETE /rfid/:rfid
func UnlinkRFID(c *fiber.Ctx) error {
	link, err := rfidService.Unlink(middleware.CurrentUser(c), c.Params("rfid"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, link)
}
