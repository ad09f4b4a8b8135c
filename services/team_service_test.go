package services

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AreaFiftyLAN/landev/models"
)

type teamFixture struct {
	teams   *mockTeamRepo
	users   *mockUserRepo
	invites *mockInviteRepo
	tickets *mockTicketRepo
	mail    *fakeMailer
	svc     *TeamService
}

func newTeamFixture() *teamFixture {
	f := &teamFixture{
		teams:   new(mockTeamRepo),
		users:   new(mockUserRepo),
		invites: new(mockInviteRepo),
		tickets: new(mockTicketRepo),
		mail:    &fakeMailer{},
	}
	f.svc = NewTeamService(f.teams, f.users, f.invites, f.tickets, fakeTxRunner{}, f.mail, zap.NewNop())
	return f
}

func TestCreateTeam(t *testing.T) {
	f := newTeamFixture()
	captain := &models.User{ID: 2, Username: "alice"}

	f.tickets.On("HasValidTicket", uint(2)).Return(true, nil)
	f.teams.On("GetByName", "Avengers").Return(nil, models.ErrTeamNotFound)
	f.teams.On("Create", mock.AnythingOfType("*models.Team")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Team).ID = 10
	}).Return(nil)
	f.teams.On("GetByID", uint(10)).Return(&models.Team{ID: 10, Name: "Avengers", CaptainID: 2}, nil)

	team, err := f.svc.Create(captain, TeamInput{TeamName: "Avengers", Captain: "alice"})
	require.NoError(t, err)
	require.Equal(t, uint(2), team.CaptainID)
}

func TestCreateTeamDuplicateNameCaseInsensitive(t *testing.T) {
	f := newTeamFixture()
	captain := &models.User{ID: 2, Username: "alice"}

	f.tickets.On("HasValidTicket", uint(2)).Return(true, nil)
	f.teams.On("GetByName", "AVENGERS").Return(&models.Team{ID: 10, Name: "Avengers"}, nil)

	_, err := f.svc.Create(captain, TeamInput{TeamName: "AVENGERS", Captain: "alice"})
	require.ErrorIs(t, err, models.ErrDuplicateTeamName)
}

func TestCreateTeamWithoutTicket(t *testing.T) {
	f := newTeamFixture()
	captain := &models.User{ID: 2, Username: "alice"}

	f.tickets.On("HasValidTicket", uint(2)).Return(false, nil)

	_, err := f.svc.Create(captain, TeamInput{TeamName: "Avengers", Captain: "alice"})
	require.ErrorIs(t, err, models.ErrTicketRequired)
}

func TestCreateTeamForSomeoneElseNeedsAdmin(t *testing.T) {
	f := newTeamFixture()
	regular := &models.User{ID: 2, Username: "alice"}

	_, err := f.svc.Create(regular, TeamInput{TeamName: "Avengers", Captain: "bob"})
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateTeamAdminNamesCaptain(t *testing.T) {
	f := newTeamFixture()
	admin := &models.User{ID: 1, Username: "root", IsAdmin: true}
	bob := &models.User{ID: 3, Username: "bob"}

	f.users.On("GetByUsername", "bob").Return(bob, nil)
	f.tickets.On("HasValidTicket", uint(3)).Return(true, nil)
	f.teams.On("GetByName", "Avengers").Return(nil, models.ErrTeamNotFound)
	f.teams.On("Create", mock.AnythingOfType("*models.Team")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Team).ID = 10
	}).Return(nil)
	f.teams.On("GetByID", uint(10)).Return(&models.Team{ID: 10, Name: "Avengers", CaptainID: 3}, nil)

	team, err := f.svc.Create(admin, TeamInput{TeamName: "Avengers", Captain: "bob"})
	require.NoError(t, err)
	require.Equal(t, bob.ID, team.CaptainID)
}

func inviteTeam() *models.Team {
	captain := models.User{ID: 2, Username: "alice"}
	member := models.User{ID: 3, Username: "bob"}
	return &models.Team{
		ID:        10,
		Name:      "Avengers",
		CaptainID: captain.ID,
		Members:   []models.User{captain, member},
	}
}

func TestInvite(t *testing.T) {
	f := newTeamFixture()
	team := inviteTeam()
	captain := &models.User{ID: 2, Username: "alice"}
	target := &models.User{ID: 4, Username: "carol", Email: "carol@example.com"}

	f.teams.On("GetByID", uint(10)).Return(team, nil)
	f.users.On("GetByUsername", "carol").Return(target, nil)
	f.tickets.On("HasValidTicket", uint(4)).Return(true, nil)
	f.invites.On("FindValidByUserAndTeam", uint(4), uint(10)).Return([]models.TeamInviteToken{}, nil)
	f.invites.On("Create", mock.AnythingOfType("*models.TeamInviteToken")).Return(nil)

	invite, err := f.svc.Invite(captain, 10, "carol")
	require.NoError(t, err)
	require.Equal(t, uint(4), invite.UserID)
	require.Equal(t, uint(10), invite.TeamID)
	require.NotEmpty(t, invite.Token)
	require.Equal(t, []string{"carol@example.com"}, f.mail.invites)
}

func TestInviteByNonCaptain(t *testing.T) {
	f := newTeamFixture()
	member := &models.User{ID: 3, Username: "bob"}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)

	_, err := f.svc.Invite(member, 10, "carol")
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestInviteExistingMember(t *testing.T) {
	f := newTeamFixture()
	captain := &models.User{ID: 2, Username: "alice"}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "bob").Return(&models.User{ID: 3, Username: "bob"}, nil)

	_, err := f.svc.Invite(captain, 10, "bob")
	require.ErrorIs(t, err, models.ErrAlreadyMember)
}

func TestInviteCaptainThemself(t *testing.T) {
	f := newTeamFixture()
	captain := &models.User{ID: 2, Username: "alice"}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "alice").Return(&models.User{ID: 2, Username: "alice"}, nil)

	_, err := f.svc.Invite(captain, 10, "alice")
	require.ErrorIs(t, err, models.ErrAlreadyMember)
}

func TestInviteWithoutTicket(t *testing.T) {
	f := newTeamFixture()
	captain := &models.User{ID: 2, Username: "alice"}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "carol").Return(&models.User{ID: 4, Username: "carol"}, nil)
	f.tickets.On("HasValidTicket", uint(4)).Return(false, nil)

	_, err := f.svc.Invite(captain, 10, "carol")
	require.ErrorIs(t, err, models.ErrTicketRequired)
}

func TestInviteTwice(t *testing.T) {
	f := newTeamFixture()
	captain := &models.User{ID: 2, Username: "alice"}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "carol").Return(&models.User{ID: 4, Username: "carol"}, nil)
	f.tickets.On("HasValidTicket", uint(4)).Return(true, nil)
	f.invites.On("FindValidByUserAndTeam", uint(4), uint(10)).Return([]models.TeamInviteToken{
		{ID: 1, UserID: 4, TeamID: 10, Valid: true},
	}, nil)

	_, err := f.svc.Invite(captain, 10, "carol")
	require.ErrorIs(t, err, models.ErrDuplicateInvite)
}

func TestInviteMailFailureDoesNotFailRequest(t *testing.T) {
	f := newTeamFixture()
	f.mail.err = models.ErrValidation // any error from the pipeline
	captain := &models.User{ID: 2, Username: "alice"}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "carol").Return(&models.User{ID: 4, Username: "carol"}, nil)
	f.tickets.On("HasValidTicket", uint(4)).Return(true, nil)
	f.invites.On("FindValidByUserAndTeam", uint(4), uint(10)).Return([]models.TeamInviteToken{}, nil)
	f.invites.On("Create", mock.AnythingOfType("*models.TeamInviteToken")).Return(nil)

	_, err := f.svc.Invite(captain, 10, "carol")
	require.NoError(t, err)
}

func TestAcceptInvite(t *testing.T) {
	f := newTeamFixture()
	team := inviteTeam()
	carol := &models.User{ID: 4, Username: "carol"}
	invite := &models.TeamInviteToken{ID: 1, Token: "tok", UserID: 4, TeamID: 10, Valid: true}

	f.invites.On("GetByToken", "tok").Return(invite, nil)
	f.teams.On("GetByID", uint(10)).Return(team, nil)
	f.users.On("GetByID", uint(4)).Return(carol, nil)
	f.teams.On("AddMember", team, carol).Return(nil)
	f.invites.On("Save", invite).Return(nil)

	require.NoError(t, f.svc.AcceptInvite("tok"))
	require.False(t, invite.Valid)
	f.teams.AssertExpectations(t)
}

func TestAcceptInviteConsumedToken(t *testing.T) {
	f := newTeamFixture()
	f.invites.On("GetByToken", "tok").Return(&models.TeamInviteToken{Token: "tok", Valid: false}, nil)

	require.ErrorIs(t, f.svc.AcceptInvite("tok"), models.ErrInviteNotFound)
}

func TestAcceptInviteUnknownToken(t *testing.T) {
	f := newTeamFixture()
	f.invites.On("GetByToken", "nope").Return(nil, models.ErrInviteNotFound)

	require.ErrorIs(t, f.svc.AcceptInvite("nope"), models.ErrInviteNotFound)
}

func TestDeclineInviteConsumedToken(t *testing.T) {
	f := newTeamFixture()
	f.invites.On("GetByToken", "tok").Return(&models.TeamInviteToken{Token: "tok", Valid: false}, nil)

	require.ErrorIs(t, f.svc.DeclineInvite("tok"), models.ErrInviteNotFound)
}

func TestDeclineInviteAllowsReinvite(t *testing.T) {
	f := newTeamFixture()
	invite := &models.TeamInviteToken{ID: 1, Token: "tok", UserID: 4, TeamID: 10, Valid: true}

	f.invites.On("GetByToken", "tok").Return(invite, nil)
	f.invites.On("Save", invite).Return(nil)

	require.NoError(t, f.svc.DeclineInvite("tok"))
	require.False(t, invite.Valid)

	// After the decline, no valid invite remains, so a new one goes out.
	captain := &models.User{ID: 2, Username: "alice"}
	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "carol").Return(&models.User{ID: 4, Username: "carol"}, nil)
	f.tickets.On("HasValidTicket", uint(4)).Return(true, nil)
	f.invites.On("FindValidByUserAndTeam", uint(4), uint(10)).Return([]models.TeamInviteToken{}, nil)
	f.invites.On("Create", mock.AnythingOfType("*models.TeamInviteToken")).Return(nil)

	_, err := f.svc.Invite(captain, 10, "carol")
	require.NoError(t, err)
}

func TestRemoveMember(t *testing.T) {
	f := newTeamFixture()
	team := inviteTeam()
	captain := &models.User{ID: 2, Username: "alice"}
	bob := &models.User{ID: 3, Username: "bob"}

	f.teams.On("GetByID", uint(10)).Return(team, nil)
	f.users.On("GetByUsername", "bob").Return(bob, nil)
	f.teams.On("RemoveMember", team, bob).Return(nil)

	require.NoError(t, f.svc.RemoveMember(captain, 10, "bob"))
}

func TestCaptainNeverRemovable(t *testing.T) {
	f := newTeamFixture()
	alice := &models.User{ID: 2, Username: "alice"}
	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "alice").Return(alice, nil)

	admin := &models.User{ID: 1, IsAdmin: true}
	for _, principal := range []*models.User{admin, alice} {
		err := f.svc.RemoveMember(principal, 10, "alice")
		require.ErrorIs(t, err, models.ErrCaptainImmutable)
	}
}

func TestRemoveNonMember(t *testing.T) {
	f := newTeamFixture()
	admin := &models.User{ID: 1, IsAdmin: true}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "carol").Return(&models.User{ID: 4, Username: "carol"}, nil)

	require.ErrorIs(t, f.svc.RemoveMember(admin, 10, "carol"), models.ErrUserNotFound)
}

func TestRemoveMemberByOutsider(t *testing.T) {
	f := newTeamFixture()
	outsider := &models.User{ID: 5, Username: "mallory"}

	f.teams.On("GetByID", uint(10)).Return(inviteTeam(), nil)
	f.users.On("GetByUsername", "bob").Return(&models.User{ID: 3, Username: "bob"}, nil)

	require.ErrorIs(t, f.svc.RemoveMember(outsider, 10, "bob"), models.ErrForbidden)
}
