// handlers/banners.go
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/middleware"
	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/services"
)

// GetCurrentBanner returns the banner active today. No banner scheduled
// is a normal answer, not an error.
// GET /banners/current
func GetCurrentBanner(c *fiber.Ctx) error {
	banner, err := bannerService.Current()
	if err != nil {
		if errors.Is(err, models.ErrBannerNotFound) {
			return c.JSON(fiber.Map{
				"success": true,
				"data":    nil,
			})
		}
		return fail(c, err)
	}
	return ok(c, banner)
}

// GetBanners lists every banner.
// GET /banners (admin)
func GetBanners(c *fiber.Ctx) error {
	banners, err := bannerService.GetAll(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, banners)
}

type bannerRequest struct {
	Text      string    `json:"text"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// CreateBanner schedules a new banner.
// POST /banners (admin)
func CreateBanner(c *fiber.Ctx) error {
	var req bannerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	banner, err := bannerService.Create(middleware.CurrentUser(c), services.BannerInput{
		Text:      req.Text,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    banner,
	})
}

// UpdateBanner rewrites a scheduled banner.
// PUT /banners/:id (admin)
func UpdateBanner(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req bannerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	banner, err := bannerService.Update(middleware.CurrentUser(c), id, services.BannerInput{
		Text:      req.Text,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, banner)
}

// DeleteBanner removes a banner.
// DELETE /banners/:id (admin)
func DeleteBanner(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := bannerService.Delete(middleware.CurrentUser(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "Banner deleted"})
}
