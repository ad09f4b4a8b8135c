// services/access.go - authorization predicates
//
// Every mutating or sensitive-read operation starts by evaluating one of
// these predicates against the explicit principal. A nil principal is an
// anonymous request. Predicates never have side effects; a false result
// becomes models.ErrForbidden in the caller.
package services

import "github.com/AreaFiftyLAN/landev/models"

// CanAccessUser: the principal is the target user or an admin.
func CanAccessUser(principal *models.User, targetUserID uint) bool {
	if principal == nil {
		return false
	}
	return principal.IsAdmin || principal.ID == targetUserID
}

// CanEditTeam: captain or admin.
func CanEditTeam(principal *models.User, team *models.Team) bool {
	if principal == nil {
		return false
	}
	return principal.IsAdmin || team.CaptainID == principal.ID
}

// CanViewTeam: any member or admin. The captain counts as a member.
func CanViewTeam(principal *models.User, team *models.Team) bool {
	if principal == nil {
		return false
	}
	return principal.IsAdmin || team.HasMember(principal.ID)
}

// CanRemoveMember: captain, admin, or the member removing themself.
// Whether the target is removable at all (captains are not) is a separate
// rule checked by the team service.
func CanRemoveMember(principal *models.User, team *models.Team, target *models.User) bool {
	if principal == nil {
		return false
	}
	return principal.IsAdmin || team.CaptainID == principal.ID || principal.ID == target.ID
}

// CanAccessOrder: anonymous orders are open to everyone so an unfinished
// checkout can be resumed; assigned orders belong to their owner or an
// admin.
func CanAccessOrder(principal *models.User, order *models.Order) bool {
	if order.Anonymous() {
		return true
	}
	if principal == nil {
		return false
	}
	return principal.IsAdmin || (order.UserID != nil && *order.UserID == principal.ID)
}

// IsAdmin tolerates a nil principal.
func IsAdmin(principal *models.User) bool {
	return principal != nil && principal.IsAdmin
}
