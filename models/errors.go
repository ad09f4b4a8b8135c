// Package models contains the persisted entities and the domain errors
// every layer above maps onto HTTP statuses.
package models

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrTeamNotFound signals a missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrOrderNotFound signals a missing order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrTicketNotFound signals a missing ticket.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrTicketTypeNotFound signals an unknown ticket type name.
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	// ErrTicketOptionNotFound signals an unknown ticket option name.
	ErrTicketOptionNotFound = errors.New("ticket option not found")
	// ErrTokenNotFound is returned for unknown or invalidated auth tokens.
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenExpired is returned when an auth token exists but is past its TTL.
	ErrTokenExpired = errors.New("token expired")
	// ErrInviteNotFound covers unknown and already consumed invite tokens.
	// An invite is a resource, not a credential, so it surfaces as 404
	// rather than the 401 the auth-token errors map to.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrSubscriptionNotFound signals a missing mailing-list entry.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrRFIDLinkNotFound signals an unknown RFID.
	ErrRFIDLinkNotFound = errors.New("rfid link not found")
	// ErrBannerNotFound signals a missing banner, including "no banner
	// active today".
	ErrBannerNotFound = errors.New("banner not found")

	// ErrForbidden means the authorization predicate rejected the caller.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidCredentials covers bad username/password pairs and locked
	// accounts, indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUser signals a username or email already taken.
	ErrDuplicateUser = errors.New("username or email already taken")
	// ErrDuplicateTeamName signals a case-insensitive team name collision.
	ErrDuplicateTeamName = errors.New("team name already taken")
	// ErrDuplicateInvite signals an outstanding invite for the same user and team.
	ErrDuplicateInvite = errors.New("user already invited to this team")
	// ErrAlreadyMember signals the target already belongs to the team.
	ErrAlreadyMember = errors.New("user is already a team member")
	// ErrCaptainImmutable signals an attempt to remove a captain from their team.
	ErrCaptainImmutable = errors.New("captain cannot be removed from the team")
	// ErrDuplicateSubscription signals the email is already subscribed.
	ErrDuplicateSubscription = errors.New("email already subscribed")
	// ErrDuplicateRFIDLink signals the band or ticket is already linked.
	ErrDuplicateRFIDLink = errors.New("rfid or ticket already linked")
	// ErrInvalidOrderStatus signals a state transition the order does not allow.
	ErrInvalidOrderStatus = errors.New("operation not allowed in current order status")

	// ErrTicketRequired means the user lacks the valid ticket the operation needs.
	ErrTicketRequired = errors.New("a valid ticket is required")
	// ErrTicketLimitReached means the ticket type is sold out.
	ErrTicketLimitReached = errors.New("ticket type sold out")
	// ErrTicketSaleClosed means the type's sale deadline has passed.
	ErrTicketSaleClosed = errors.New("ticket sale closed")

	// ErrValidation signals malformed input, rejected before any persistence.
	ErrValidation = errors.New("validation failed")
)
