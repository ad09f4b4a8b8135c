package services

import (
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

type mockUserRepo struct {
	mock.Mock
}

var _ repository.UserRepo = (*mockUserRepo)(nil)

func (m *mockUserRepo) WithTx(tx *gorm.DB) repository.UserRepo { return m }

func (m *mockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) Save(user *models.User) error {
	return m.Called(user).Error(0)
}

type mockTeamRepo struct {
	mock.Mock
}

var _ repository.TeamRepo = (*mockTeamRepo)(nil)

func (m *mockTeamRepo) WithTx(tx *gorm.DB) repository.TeamRepo { return m }

func (m *mockTeamRepo) Create(team *models.Team) error {
	return m.Called(team).Error(0)
}

func (m *mockTeamRepo) GetByID(id uint) (*models.Team, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *mockTeamRepo) GetByName(name string) (*models.Team, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *mockTeamRepo) GetAll() ([]models.Team, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *mockTeamRepo) GetByMemberUsername(username string) ([]models.Team, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Team), args.Error(1)
}

func (m *mockTeamRepo) Save(team *models.Team) error {
	return m.Called(team).Error(0)
}

func (m *mockTeamRepo) AddMember(team *models.Team, user *models.User) error {
	return m.Called(team, user).Error(0)
}

func (m *mockTeamRepo) RemoveMember(team *models.Team, user *models.User) error {
	return m.Called(team, user).Error(0)
}

func (m *mockTeamRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type mockAuthTokenRepo struct {
	mock.Mock
}

var _ repository.AuthTokenRepo = (*mockAuthTokenRepo)(nil)

func (m *mockAuthTokenRepo) WithTx(tx *gorm.DB) repository.AuthTokenRepo { return m }

func (m *mockAuthTokenRepo) Create(token *models.AuthenticationToken) error {
	return m.Called(token).Error(0)
}

func (m *mockAuthTokenRepo) GetByToken(token string) (*models.AuthenticationToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthenticationToken), args.Error(1)
}

func (m *mockAuthTokenRepo) Save(token *models.AuthenticationToken) error {
	return m.Called(token).Error(0)
}

func (m *mockAuthTokenRepo) DeleteExpiredBefore(t time.Time) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

type mockInviteRepo struct {
	mock.Mock
}

var _ repository.InviteRepo = (*mockInviteRepo)(nil)

func (m *mockInviteRepo) WithTx(tx *gorm.DB) repository.InviteRepo { return m }

func (m *mockInviteRepo) Create(invite *models.TeamInviteToken) error {
	return m.Called(invite).Error(0)
}

func (m *mockInviteRepo) GetByToken(token string) (*models.TeamInviteToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamInviteToken), args.Error(1)
}

func (m *mockInviteRepo) FindValidByUserAndTeam(userID, teamID uint) ([]models.TeamInviteToken, error) {
	args := m.Called(userID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInviteToken), args.Error(1)
}

func (m *mockInviteRepo) FindValidByTeam(teamID uint) ([]models.TeamInviteToken, error) {
	args := m.Called(teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInviteToken), args.Error(1)
}

func (m *mockInviteRepo) FindValidByUsername(username string) ([]models.TeamInviteToken, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInviteToken), args.Error(1)
}

func (m *mockInviteRepo) Save(invite *models.TeamInviteToken) error {
	return m.Called(invite).Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

var _ repository.OrderRepo = (*mockOrderRepo)(nil)

func (m *mockOrderRepo) WithTx(tx *gorm.DB) repository.OrderRepo { return m }

func (m *mockOrderRepo) Create(order *models.Order) error {
	return m.Called(order).Error(0)
}

func (m *mockOrderRepo) GetByID(id uint) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Lazy return, resolved at call time instead of setup time.
	if fn, ok := args.Get(0).(func(uint) *models.Order); ok {
		return fn(id), args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetByUserID(userID uint) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetAll() ([]models.Order, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderRepo) Save(order *models.Order) error {
	return m.Called(order).Error(0)
}

type mockTicketRepo struct {
	mock.Mock
}

var _ repository.TicketRepo = (*mockTicketRepo)(nil)

func (m *mockTicketRepo) WithTx(tx *gorm.DB) repository.TicketRepo { return m }

func (m *mockTicketRepo) GetByID(id uint) (*models.Ticket, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *mockTicketRepo) GetTypeByName(name string) (*models.TicketType, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketType), args.Error(1)
}

func (m *mockTicketRepo) GetAllTypes() ([]models.TicketType, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TicketType), args.Error(1)
}

func (m *mockTicketRepo) GetOptionByName(name string) (*models.TicketOption, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketOption), args.Error(1)
}

func (m *mockTicketRepo) CountSoldByType(typeID uint) (int64, error) {
	args := m.Called(typeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTicketRepo) HasValidTicket(userID uint) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTicketRepo) Save(ticket *models.Ticket) error {
	return m.Called(ticket).Error(0)
}

// fakeTxRunner runs the transactional closure directly, without a
// database.
type fakeTxRunner struct{}

var _ repository.TxRunner = (*fakeTxRunner)(nil)

func (fakeTxRunner) Run(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// fakeMailer records hand-offs and can simulate a broken pipeline.
type fakeMailer struct {
	welcomes []string
	invites  []string
	err      error
}

var _ Mailer = (*fakeMailer)(nil)

func (m *fakeMailer) SendWelcome(recipient, username string) error {
	m.welcomes = append(m.welcomes, recipient)
	return m.err
}

func (m *fakeMailer) SendTeamInvite(recipient, teamName, token string) error {
	m.invites = append(m.invites, recipient)
	return m.err
}

// fakeReserver counts reservations, selling out after a fixed number.
type fakeReserver struct {
	reserved map[uint]int
	released map[uint]int
	limit    int
}

var _ TicketReserver = (*fakeReserver)(nil)

func newFakeReserver(limit int) *fakeReserver {
	return &fakeReserver{
		reserved: make(map[uint]int),
		released: make(map[uint]int),
		limit:    limit,
	}
}

func (r *fakeReserver) Reserve(typeID uint, limit int) error {
	if r.limit > 0 && r.reserved[typeID] >= r.limit {
		return models.ErrTicketLimitReached
	}
	r.reserved[typeID]++
	return nil
}

func (r *fakeReserver) Release(typeID uint) error {
	r.released[typeID]++
	return nil
}
