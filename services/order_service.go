// services/order_service.go - the order state machine and ticket sales
package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/AreaFiftyLAN/landev/models"
	"github.com/AreaFiftyLAN/landev/repository"
)

// TicketReserver gates ticket sales against each type's sale limit. The
// Redis-backed counter in cache satisfies it; tests swap in a fake.
type TicketReserver interface {
	Reserve(typeID uint, limit int) error
	Release(typeID uint) error
}

type OrderService struct {
	orders  repository.OrderRepo
	tickets repository.TicketRepo
	counter TicketReserver
	log     *zap.Logger
	now     func() time.Time
}

func NewOrderService(orders repository.OrderRepo, tickets repository.TicketRepo,
	counter TicketReserver, log *zap.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		tickets: tickets,
		counter: counter,
		log:     log,
		now:     time.Now,
	}
}

// buildTicket resolves the type and option names into a priced ticket,
// holding a reservation against the sale limit. The caller must Release
// on any later failure.
func (s *OrderService) buildTicket(typeName string, optionNames []string) (*models.Ticket, error) {
	ticketType, err := s.tickets.GetTypeByName(typeName)
	if err != nil {
		return nil, err
	}
	if !ticketType.Sellable(s.now()) {
		return nil, models.ErrTicketSaleClosed
	}

	options := make([]models.TicketOption, 0, len(optionNames))
	for _, name := range optionNames {
		opt, err := s.tickets.GetOptionByName(name)
		if err != nil {
			return nil, err
		}
		options = append(options, *opt)
	}

	if err := s.counter.Reserve(ticketType.ID, ticketType.Limit); err != nil {
		return nil, err
	}

	return &models.Ticket{
		TicketTypeID:   ticketType.ID,
		Type:           *ticketType,
		EnabledOptions: options,
	}, nil
}

// Create starts a new order containing one ticket. Orders always start
// anonymous, even when a logged-in user creates one; the order becomes
// theirs only through an explicit assign.
func (s *OrderService) Create(typeName string, optionNames []string) (*models.Order, error) {
	ticket, err := s.buildTicket(typeName, optionNames)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Status:  models.OrderStatusAnonymous,
		Tickets: []models.Ticket{*ticket},
	}
	order.Amount = order.CalculateAmount()

	if err := s.orders.Create(order); err != nil {
		if rerr := s.counter.Release(ticket.TicketTypeID); rerr != nil {
			s.log.Error("reservation not released", zap.Uint("type_id", ticket.TicketTypeID), zap.Error(rerr))
		}
		return nil, err
	}
	return s.orders.GetByID(order.ID)
}

func (s *OrderService) Get(principal *models.User, orderID uint) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !CanAccessOrder(principal, order) {
		return nil, models.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) GetAll(principal *models.User) ([]models.Order, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	return s.orders.GetAll()
}

func (s *OrderService) OrdersForUser(userID uint) ([]models.Order, error) {
	return s.orders.GetByUserID(userID)
}

// AddTicket puts one more ticket on an open order and reprices it.
// Checked-out and approved orders are frozen.
func (s *OrderService) AddTicket(principal *models.User, orderID uint, typeName string, optionNames []string) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !CanAccessOrder(principal, order) {
		return nil, models.ErrForbidden
	}
	if order.Status != models.OrderStatusAnonymous && order.Status != models.OrderStatusAssigned {
		return nil, models.ErrInvalidOrderStatus
	}

	ticket, err := s.buildTicket(typeName, optionNames)
	if err != nil {
		return nil, err
	}

	order.Tickets = append(order.Tickets, *ticket)
	order.Amount = order.CalculateAmount()
	if err := s.orders.Save(order); err != nil {
		if rerr := s.counter.Release(ticket.TicketTypeID); rerr != nil {
			s.log.Error("reservation not released", zap.Uint("type_id", ticket.TicketTypeID), zap.Error(rerr))
		}
		return nil, err
	}
	return s.orders.GetByID(order.ID)
}

// Assign binds an anonymous order to the logged-in user.
func (s *OrderService) Assign(principal *models.User, orderID uint) (*models.Order, error) {
	if principal == nil {
		return nil, models.ErrForbidden
	}
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusAnonymous {
		return nil, models.ErrInvalidOrderStatus
	}

	order.UserID = &principal.ID
	order.Status = models.OrderStatusAssigned
	if err := s.orders.Save(order); err != nil {
		return nil, err
	}
	return s.orders.GetByID(order.ID)
}

// Checkout moves an assigned order to checked out and stamps the order's
// user as owner on every ticket. The tickets turn valid on approval.
func (s *OrderService) Checkout(principal *models.User, orderID uint) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !CanAccessOrder(principal, order) || order.Anonymous() {
		return nil, models.ErrForbidden
	}
	if order.Status != models.OrderStatusAssigned {
		return nil, models.ErrInvalidOrderStatus
	}

	for i := range order.Tickets {
		order.Tickets[i].OwnerID = order.UserID
	}
	order.Status = models.OrderStatusCheckedOut
	if err := s.orders.Save(order); err != nil {
		return nil, err
	}
	s.log.Info("order checked out", zap.Uint("order_id", order.ID), zap.Float64("amount", order.Amount))
	return s.orders.GetByID(order.ID)
}

// Approve confirms payment. Admin only; all tickets become valid, which
// is what team eligibility checks look at.
func (s *OrderService) Approve(principal *models.User, orderID uint) (*models.Order, error) {
	if !IsAdmin(principal) {
		return nil, models.ErrForbidden
	}
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusCheckedOut {
		return nil, models.ErrInvalidOrderStatus
	}

	for i := range order.Tickets {
		order.Tickets[i].OwnerID = order.UserID
		order.Tickets[i].Valid = true
	}
	order.Status = models.OrderStatusApproved
	if err := s.orders.Save(order); err != nil {
		return nil, err
	}
	s.log.Info("order approved", zap.Uint("order_id", order.ID))
	return s.orders.GetByID(order.ID)
}

// TicketTypes lists the types that can still be ordered.
func (s *OrderService) TicketTypes() ([]models.TicketType, error) {
	types, err := s.tickets.GetAllTypes()
	if err != nil {
		return nil, err
	}
	now := s.now()
	sellable := types[:0]
	for _, t := range types {
		if t.Sellable(now) {
			sellable = append(sellable, t)
		}
	}
	return sellable, nil
}
