package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AreaFiftyLAN/landev/models"
)

type orderFixture struct {
	orders  *mockOrderRepo
	tickets *mockTicketRepo
	counter *fakeReserver
	svc     *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:  new(mockOrderRepo),
		tickets: new(mockTicketRepo),
		counter: newFakeReserver(0),
	}
	f.svc = NewOrderService(f.orders, f.tickets, f.counter, zap.NewNop())
	return f
}

func regularType() *models.TicketType {
	deadline := time.Now().Add(24 * time.Hour)
	return &models.TicketType{ID: 1, Name: "REGULAR_FULL", Price: 30.0, Deadline: &deadline}
}

func (f *orderFixture) expectCatalog() {
	f.tickets.On("GetTypeByName", "REGULAR_FULL").Return(regularType(), nil)
	f.tickets.On("GetOptionByName", "CH_MEMBER").Return(&models.TicketOption{ID: 1, Name: "CH_MEMBER", Price: -2.5}, nil)
	f.tickets.On("GetOptionByName", "PICKUP_SERVICE").Return(&models.TicketOption{ID: 2, Name: "PICKUP_SERVICE", Price: 0}, nil)
}

func (f *orderFixture) expectCreateEcho() {
	var stored *models.Order
	f.orders.On("Create", mock.AnythingOfType("*models.Order")).Run(func(args mock.Arguments) {
		stored = args.Get(0).(*models.Order)
		stored.ID = 20
	}).Return(nil)
	f.orders.On("GetByID", uint(20)).Return(func(uint) *models.Order { return stored }, nil)
}

func TestCreateOrderIsAnonymous(t *testing.T) {
	f := newOrderFixture()
	f.expectCatalog()
	f.expectCreateEcho()

	order, err := f.svc.Create("REGULAR_FULL", nil)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusAnonymous, order.Status)
	require.Nil(t, order.UserID)
	require.InDelta(t, 30.0, order.Amount, 0.001)
}

func TestOrderAmountWithOptions(t *testing.T) {
	f := newOrderFixture()
	f.expectCatalog()
	f.expectCreateEcho()

	order, err := f.svc.Create("REGULAR_FULL", []string{"CH_MEMBER", "PICKUP_SERVICE"})
	require.NoError(t, err)
	require.InDelta(t, 27.5, order.Amount, 0.001)
}

func TestOrderAmountTwoTickets(t *testing.T) {
	f := newOrderFixture()
	f.expectCatalog()
	f.expectCreateEcho()

	order, err := f.svc.Create("REGULAR_FULL", []string{"CH_MEMBER", "PICKUP_SERVICE"})
	require.NoError(t, err)

	f.orders.On("Save", order).Return(nil)
	updated, err := f.svc.AddTicket(nil, 20, "REGULAR_FULL", []string{"PICKUP_SERVICE"})
	require.NoError(t, err)
	require.InDelta(t, 57.5, updated.Amount, 0.001)
	require.Len(t, updated.Tickets, 2)
}

func TestCreateOrderUnknownType(t *testing.T) {
	f := newOrderFixture()
	f.tickets.On("GetTypeByName", "VIP").Return(nil, models.ErrTicketTypeNotFound)

	_, err := f.svc.Create("VIP", nil)
	require.ErrorIs(t, err, models.ErrTicketTypeNotFound)
}

func TestCreateOrderSoldOut(t *testing.T) {
	f := newOrderFixture()
	f.counter.limit = 1
	f.expectCatalog()
	f.expectCreateEcho()

	_, err := f.svc.Create("REGULAR_FULL", nil)
	require.NoError(t, err)

	_, err = f.svc.Create("REGULAR_FULL", nil)
	require.ErrorIs(t, err, models.ErrTicketLimitReached)
}

func TestCreateOrderPastDeadline(t *testing.T) {
	f := newOrderFixture()
	past := time.Now().Add(-time.Hour)
	f.tickets.On("GetTypeByName", "REGULAR_FULL").Return(&models.TicketType{
		ID: 1, Name: "REGULAR_FULL", Price: 30.0, Deadline: &past,
	}, nil)

	_, err := f.svc.Create("REGULAR_FULL", nil)
	require.ErrorIs(t, err, models.ErrTicketSaleClosed)
}

func TestCreateOrderReleasesReservationOnFailure(t *testing.T) {
	f := newOrderFixture()
	f.expectCatalog()
	f.orders.On("Create", mock.AnythingOfType("*models.Order")).Return(models.ErrValidation)

	_, err := f.svc.Create("REGULAR_FULL", nil)
	require.Error(t, err)
	require.Equal(t, 1, f.counter.released[1])
}

func assignedOrder(ownerID uint) *models.Order {
	return &models.Order{
		ID:     20,
		UserID: &ownerID,
		Status: models.OrderStatusAssigned,
		Tickets: []models.Ticket{
			{ID: 1, TicketTypeID: 1, Type: *regularType()},
		},
		Amount: 30.0,
	}
}

func TestAddTicketToAssignedOrderByOwner(t *testing.T) {
	f := newOrderFixture()
	owner := &models.User{ID: 5}
	order := assignedOrder(owner.ID)

	f.orders.On("GetByID", uint(20)).Return(order, nil)
	f.expectCatalog()
	f.orders.On("Save", order).Return(nil)

	updated, err := f.svc.AddTicket(owner, 20, "REGULAR_FULL", nil)
	require.NoError(t, err)
	require.Len(t, updated.Tickets, 2)
	require.InDelta(t, 60.0, updated.Amount, 0.001)
}

func TestAddTicketToAssignedOrderByStranger(t *testing.T) {
	f := newOrderFixture()
	order := assignedOrder(5)
	stranger := &models.User{ID: 9}

	f.orders.On("GetByID", uint(20)).Return(order, nil)

	_, err := f.svc.AddTicket(stranger, 20, "REGULAR_FULL", nil)
	require.ErrorIs(t, err, models.ErrForbidden)

	_, err = f.svc.AddTicket(nil, 20, "REGULAR_FULL", nil)
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestAddTicketToCheckedOutOrder(t *testing.T) {
	f := newOrderFixture()
	order := assignedOrder(5)
	order.Status = models.OrderStatusCheckedOut

	f.orders.On("GetByID", uint(20)).Return(order, nil)

	_, err := f.svc.AddTicket(&models.User{ID: 5}, 20, "REGULAR_FULL", nil)
	require.ErrorIs(t, err, models.ErrInvalidOrderStatus)
}

func TestAssignOrder(t *testing.T) {
	f := newOrderFixture()
	order := &models.Order{ID: 20, Status: models.OrderStatusAnonymous}
	user := &models.User{ID: 5}

	f.orders.On("GetByID", uint(20)).Return(order, nil)
	f.orders.On("Save", order).Return(nil)

	updated, err := f.svc.Assign(user, 20)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusAssigned, updated.Status)
	require.Equal(t, user.ID, *updated.UserID)
}

func TestAssignNonAnonymousOrder(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("GetByID", uint(20)).Return(assignedOrder(5), nil)

	_, err := f.svc.Assign(&models.User{ID: 9}, 20)
	require.ErrorIs(t, err, models.ErrInvalidOrderStatus)
}

func TestAssignRequiresPrincipal(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.Assign(nil, 20)
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestCheckoutStampsOwners(t *testing.T) {
	f := newOrderFixture()
	owner := &models.User{ID: 5}
	order := assignedOrder(owner.ID)

	f.orders.On("GetByID", uint(20)).Return(order, nil)
	f.orders.On("Save", order).Return(nil)

	updated, err := f.svc.Checkout(owner, 20)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCheckedOut, updated.Status)
	for _, ticket := range updated.Tickets {
		require.Equal(t, owner.ID, *ticket.OwnerID)
		require.False(t, ticket.Valid)
	}
}

func TestApproveValidatesTickets(t *testing.T) {
	f := newOrderFixture()
	admin := &models.User{ID: 1, IsAdmin: true}
	order := assignedOrder(5)
	order.Status = models.OrderStatusCheckedOut
	ownerID := uint(5)
	order.Tickets[0].OwnerID = &ownerID

	f.orders.On("GetByID", uint(20)).Return(order, nil)
	f.orders.On("Save", order).Return(nil)

	updated, err := f.svc.Approve(admin, 20)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusApproved, updated.Status)
	for _, ticket := range updated.Tickets {
		require.True(t, ticket.Valid)
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.Approve(&models.User{ID: 5}, 20)
	require.ErrorIs(t, err, models.ErrForbidden)
}

func TestApproveRequiresCheckedOut(t *testing.T) {
	f := newOrderFixture()
	admin := &models.User{ID: 1, IsAdmin: true}
	f.orders.On("GetByID", uint(20)).Return(assignedOrder(5), nil)

	_, err := f.svc.Approve(admin, 20)
	require.ErrorIs(t, err, models.ErrInvalidOrderStatus)
}

func TestTicketTypesFiltersClosedSales(t *testing.T) {
	f := newOrderFixture()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	f.tickets.On("GetAllTypes").Return([]models.TicketType{
		{ID: 1, Name: "EARLY_FULL", Deadline: &past},
		{ID: 2, Name: "REGULAR_FULL", Deadline: &future},
		{ID: 3, Name: "OPEN_ENDED"},
	}, nil)

	types, err := f.svc.TicketTypes()
	require.NoError(t, err)
	require.Len(t, types, 2)
	require.Equal(t, "REGULAR_FULL", types[0].Name)
	require.Equal(t, "OPEN_ENDED", types[1].Name)
}
