// handlers/teams.go
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/AreaFiftyLAN/landev/middleware"
	"github.com/AreaFiftyLAN/landev/services"
)

// CreateTeam starts a new team with the caller as captain. Admins may
// name somebody else as captain.
// POST /teams
func CreateTeam(c *fiber.Ctx) error {
	var req struct {
		TeamName string `json:"team_name"`
		Captain  string `json:"captain_username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	principal := middleware.CurrentUser(c)
	if req.Captain == "" && principal != nil {
		req.Captain = principal.Username
	}

	team, err := teamService.Create(principal, services.TeamInput{
		TeamName: req.TeamName,
		Captain:  req.Captain,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, fmt.Sprintf("/teams/%d", team.ID), team)
}

// GetTeams lists every team.
// GET /teams (admin)
func GetTeams(c *fiber.Ctx) error {
	teams, err := teamService.GetAll(middleware.CurrentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, teams)
}

// GetTeam returns one team with its members.
// GET /teams/:id (member or admin)
func GetTeam(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	team, err := teamService.Get(middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, team)
}

// UpdateTeam renames the team or hands over the captaincy.
// PUT /teams/:id (captain or admin)
func UpdateTeam(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req struct {
		TeamName string `json:"team_name"`
		Captain  string `json:"captain_username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	team, err := teamService.Update(middleware.CurrentUser(c), id, services.TeamInput{
		TeamName: req.TeamName,
		Captain:  req.Captain,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, team)
}

// DeleteTeam removes the team and its memberships.
// DELETE /teams/:id (admin)
func DeleteTeam(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := teamService.Delete(middleware.CurrentUser(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "Team deleted"})
}

// InviteMember issues an invite token for the named user.
// POST /teams/:id/invites (captain or admin)
func InviteMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return badRequest(c, "Missing username")
	}
	invite, err := teamService.Invite(middleware.CurrentUser(c), id, req.Username)
	if err != nil {
		return fail(c, err)
	}
	return created(c, fmt.Sprintf("/teams/%d/invites", id), invite)
}

// GetTeamInvites lists a team's outstanding invites.
// GET /teams/:id/invites (captain or admin)
func GetTeamInvites(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	invites, err := teamService.TeamInvites(middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, invites)
}

// AcceptInvite consumes an invite token and joins the team.
// POST /teams/invites
func AcceptInvite(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return badRequest(c, "Missing token")
	}
	if err := teamService.AcceptInvite(req.Token); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "Invite accepted"})
}

// DeclineInvite consumes an invite token without joining.
// DELETE /teams/invites
func DeclineInvite(c *fiber.Ctx) error {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return badRequest(c, "Missing token")
	}
	if err := teamService.DeclineInvite(req.Token); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "Invite declined"})
}

// AddMember puts a user directly on the team, skipping the invite.
// POST /teams/:id (captain or admin)
func AddMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return badRequest(c, "Missing username")
	}
	if err := teamService.AddMember(middleware.CurrentUser(c), id, req.Username); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "Member added"})
}

// RemoveMember takes a user off the team. Captains cannot be removed.
// DELETE /teams/:id/members (captain, admin or the member themself)
func RemoveMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil || req.Username == "" {
		return badRequest(c, "Missing username")
	}
	if err := teamService.RemoveMember(middleware.CurrentUser(c), id, req.Username); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"message": "Member removed"})
}
