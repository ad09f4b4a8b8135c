// handlers/helpers.go - shared wiring and the domain-error to HTTP mapping
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/services"
)

var (
	authService         *services.AuthService
	userService         *services.UserService
	teamService         *services.TeamService
	orderService        *services.OrderService
	subscriptionService *services.SubscriptionService
	bannerService       *services.BannerService
	rfidService         *services.RFIDService
)

// Init wires the handler package to its services. Called once from main
// before the routes are registered.
func Init(auth *services.AuthService, users *services.UserService, teams *services.TeamService,
	orders *services.OrderService, subs *services.SubscriptionService,
	banners *services.BannerService, rfid *services.RFIDService) {
	authService = auth
	userService = users
	teamService = teams
	orderService = orders
	subscriptionService = subs
	bannerService = banners
	rfidService = rfid
}

// httpStatus maps a domain error onto its HTTP status.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrTeamNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrTicketTypeNotFound),
		errors.Is(err, models.ErrTicketOptionNotFound),
		errors.Is(err, models.ErrSubscriptionNotFound),
		errors.Is(err, models.ErrRFIDLinkNotFound),
		errors.Is(err, models.ErrInviteNotFound),
		errors.Is(err, models.ErrBannerNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrCaptainImmutable),
		errors.Is(err, models.ErrTicketRequired):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrDuplicateTeamName),
		errors.Is(err, models.ErrDuplicateInvite),
		errors.Is(err, models.ErrAlreadyMember),
		errors.Is(err, models.ErrDuplicateSubscription),
		errors.Is(err, models.ErrDuplicateRFIDLink),
		errors.Is(err, models.ErrInvalidOrderStatus):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrTicketLimitReached),
		errors.Is(err, models.ErrTicketSaleClosed):
		return fiber.StatusGone
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrTokenNotFound),
		errors.Is(err, models.ErrTokenExpired):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	status := httpStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// created answers 201 with a Location header pointing at the new resource.
func created(c *fiber.Ctx, location string, payload interface{}) error {
	c.Set(fiber.HeaderLocation, location)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payload,
	})
}

func ok(c *fiber.Ctx, payload interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    payload,
	})
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
