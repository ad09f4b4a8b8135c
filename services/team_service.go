// services/team_service.go - team lifecycle and the invite flow
package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

type TeamInput struct {
	TeamName string
	Captain  string
}

type TeamService struct {
	teams   repository.TeamRepo
	users   repository.UserRepo
	invites repository.InviteRepo
	tickets repository.TicketRepo
	tx      repository.TxRunner
	mail    Mailer
	log     *zap.Logger
}

func NewTeamService(teams repository.TeamRepo, users repository.UserRepo, invites repository.InviteRepo,
	tickets repository.TicketRepo, tx repository.TxRunner, mail Mailer, log *zap.Logger) *TeamService {
	return &TeamService{
		teams:   teams,
		users:   users,
		invites: invites,
		tickets: tickets,
		tx:      tx,
		mail:    mail,
		log:     log,
	}
}

// Create makes a new team with the captain as its only member. Regular
// users always become captain of the teams they create; only admins may
// name someone else.
func (s *TeamService) Create(principal *models.User, input TeamInput) (*models.Team, error) {
	if principal == nil {
		return nil, models.ErrForbidden
	}
	if strings.TrimSpace(input.TeamName) == "" {
		return nil, models.ErrValidation
	}

	captain := principal
	if !principal.HasUsername(input.Captain) {
		if !principal.IsAdmin {
			return nil, models.ErrValidation
		}
		var err error
		captain, err = s.users.GetByUsername(input.Captain)
		if err != nil {
			return nil, err
		}
	}

	eligible, err := s.tickets.HasValidTicket(captain.ID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, models.ErrTicketRequired
	}

	if _, err := s.teams.GetByName(input.TeamName); err == nil {
		return nil, models.ErrDuplicateTeamName
	} else if !errors.Is(err, models.ErrTeamNotFound) {
		return nil, err
	}

	team := &models.Team{
		Name:      input.TeamName,
		CaptainID: captain.ID,
		Members:   []models.User{*captain},
	}
	if err := s.teams.Create(team); err != nil {
		return nil, err
	}
	s.log.Info("team created",
		zap.Uint("team_id", team.ID),
		zap.String("captain", captain.Username))
	return s.teams.GetByID(team.ID)
}

func (s *TeamService) Get(principal *models.User, teamID uint) (*models.Team, error) {
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if !CanViewTeam(principal, team) {
		return nil, models.ErrForbidden
	}
	return team, nil
}

func (s *TeamService) GetAll(principal *models.User) ([]models.Team, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	return s.teams.GetAll()
}

func (s *TeamService) TeamsForUser(username string) ([]models.Team, error) {
	return s.teams.GetByMemberUsername(username)
}

// Update renames the team and optionally hands the captaincy to another
// member. The new captain must already be on the team and hold a valid
// ticket.
func (s *TeamService) Update(principal *models.User, teamID uint, input TeamInput) (*models.Team, error) {
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if !CanEditTeam(principal, team) {
		return nil, models.ErrForbidden
	}
	if strings.TrimSpace(input.TeamName) == "" {
		return nil, models.ErrValidation
	}

	if other, err := s.teams.GetByName(input.TeamName); err == nil && other.ID != teamID {
		return nil, models.ErrDuplicateTeamName
	} else if err != nil && !errors.Is(err, models.ErrTeamNotFound) {
		return nil, err
	}
	team.Name = input.TeamName

	if input.Captain != "" {
		captain, err := s.users.GetByUsername(input.Captain)
		if err != nil {
			return nil, err
		}
		if captain.ID != team.CaptainID {
			if !team.HasMember(captain.ID) {
				return nil, models.ErrValidation
			}
			eligible, err := s.tickets.HasValidTicket(captain.ID)
			if err != nil {
				return nil, err
			}
			if !eligible {
				return nil, models.ErrTicketRequired
			}
			team.CaptainID = captain.ID
			team.Captain = captain
		}
	}

	if err := s.teams.Save(team); err != nil {
		return nil, err
	}
	return s.teams.GetByID(team.ID)
}

func (s *TeamService) Delete(principal *models.User, teamID uint) error {
	if !IsAdmin(principal) {
		return models.ErrForbidden
	}
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return err
	}
	if err := s.teams.Delete(teamID); err != nil {
		return err
	}
	s.log.Info("team deleted", zap.Uint("team_id", teamID), zap.String("name", team.Name))
	return nil
}

// Invite issues a single-use invite token for the named user and queues
// the invite mail. Mail delivery failures are logged, never returned:
// the invite stays reachable through the user's invite listing.
func (s *TeamService) Invite(principal *models.User, teamID uint, username string) (*models.TeamInviteToken, error) {
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if !CanEditTeam(principal, team) {
		return nil, models.ErrForbidden
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	if team.HasMember(user.ID) {
		return nil, models.ErrAlreadyMember
	}

	eligible, err := s.tickets.HasValidTicket(user.ID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, models.ErrTicketRequired
	}

	outstanding, err := s.invites.FindValidByUserAndTeam(user.ID, teamID)
	if err != nil {
		return nil, err
	}
	if len(outstanding) > 0 {
		return nil, models.ErrDuplicateInvite
	}

	invite := &models.TeamInviteToken{
		Token:  uuid.New().String(),
		UserID: user.ID,
		TeamID: team.ID,
		Valid:  true,
	}
	if err := s.invites.Create(invite); err != nil {
		return nil, err
	}

	if err := s.mail.SendTeamInvite(user.Email, team.Name, invite.Token); err != nil {
		s.log.Warn("invite mail not queued",
			zap.String("recipient", user.Email),
			zap.Uint("team_id", team.ID),
			zap.Error(err))
	}
	return invite, nil
}

// TeamInvites lists the outstanding invites of a team, visible to the
// captain and admins.
func (s *TeamService) TeamInvites(principal *models.User, teamID uint) ([]models.TeamInviteToken, error) {
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return nil, err
	}
	if !CanEditTeam(principal, team) {
		return nil, models.ErrForbidden
	}
	return s.invites.FindValidByTeam(teamID)
}

// UserInvites lists the outstanding invites addressed to a user.
func (s *TeamService) UserInvites(username string) ([]models.TeamInviteToken, error) {
	return s.invites.FindValidByUsername(username)
}

// AcceptInvite consumes the token and adds its user to the team. The
// membership write and the token invalidation commit together. A token
// that was already consumed reads the same as one that never existed.
func (s *TeamService) AcceptInvite(token string) error {
	invite, err := s.invites.GetByToken(token)
	if err != nil {
		return err
	}
	if !invite.Valid {
		return models.ErrInviteNotFound
	}

	team, err := s.teams.GetByID(invite.TeamID)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(invite.UserID)
	if err != nil {
		return err
	}
	if team.HasMember(user.ID) {
		return models.ErrAlreadyMember
	}

	return s.tx.Run(func(tx *gorm.DB) error {
		if err := s.teams.WithTx(tx).AddMember(team, user); err != nil {
			return err
		}
		invite.Valid = false
		return s.invites.WithTx(tx).Save(invite)
	})
}

// DeclineInvite consumes the token without joining. A declined user can
// be invited again afterwards.
func (s *TeamService) DeclineInvite(token string) error {
	invite, err := s.invites.GetByToken(token)
	if err != nil {
		return err
	}
	if !invite.Valid {
		return models.ErrInviteNotFound
	}
	invite.Valid = false
	return s.invites.Save(invite)
}

// AddMember puts a user straight on the team, bypassing the invite flow.
func (s *TeamService) AddMember(principal *models.User, teamID uint, username string) error {
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return err
	}
	if !CanEditTeam(principal, team) {
		return models.ErrForbidden
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}
	if team.HasMember(user.ID) {
		return models.ErrAlreadyMember
	}

	eligible, err := s.tickets.HasValidTicket(user.ID)
	if err != nil {
		return err
	}
	if !eligible {
		return models.ErrTicketRequired
	}

	return s.teams.AddMember(team, user)
}

// RemoveMember takes a user off the team. The captain can never be
// removed, not even by an admin; delete the team instead.
func (s *TeamService) RemoveMember(principal *models.User, teamID uint, username string) error {
	team, err := s.teams.GetByID(teamID)
	if err != nil {
		return err
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}

	if !CanRemoveMember(principal, team, user) {
		return models.ErrForbidden
	}
	if user.ID == team.CaptainID {
		return models.ErrCaptainImmutable
	}
	if !team.HasMember(user.ID) {
		return models.ErrUserNotFound
	}

	return s.teams.RemoveMember(team, user)
}
