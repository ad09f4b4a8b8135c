package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AreaFiftyLAN/landev/models"
)

type OrderRepo interface {
	WithTx(tx *gorm.DB) OrderRepo
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	Save(order *models.Order) error
}

// TicketRepo covers tickets plus the catalog of types and options they
// are priced from.
type TicketRepo interface {
	WithTx(tx *gorm.DB) TicketRepo
	GetByID(id uint) (*models.Ticket, error)
	GetTypeByName(name string) (*models.TicketType, error)
	GetAllTypes() ([]models.TicketType, error)
	GetOptionByName(name string) (*models.TicketOption, error)
	CountSoldByType(typeID uint) (int64, error)
	HasValidTicket(userID uint) (bool, error)
	Save(ticket *models.Ticket) error
}

type orderRepoGorm struct {
	db *gorm.DB
}

var _ OrderRepo = (*orderRepoGorm)(nil)

func NewOrderRepoGorm(db *gorm.DB) *orderRepoGorm {
	return &orderRepoGorm{db: db}
}

func (r *orderRepoGorm) WithTx(tx *gorm.DB) OrderRepo {
	return &orderRepoGorm{db: tx}
}

func (r *orderRepoGorm) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepoGorm) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("User.Profile").
		Preload("Tickets.Type").
		Preload("Tickets.EnabledOptions").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepoGorm) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Tickets.Type").
		Preload("Tickets.EnabledOptions").
		Where("user_id = ?", userID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepoGorm) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("User.Profile").
		Preload("Tickets.Type").
		Preload("Tickets.EnabledOptions").
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepoGorm) Save(order *models.Order) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

type ticketRepoGorm struct {
	db *gorm.DB
}

var _ TicketRepo = (*ticketRepoGorm)(nil)

func NewTicketRepoGorm(db *gorm.DB) *ticketRepoGorm {
	return &ticketRepoGorm{db: db}
}

func (r *ticketRepoGorm) WithTx(tx *gorm.DB) TicketRepo {
	return &ticketRepoGorm{db: tx}
}

func (r *ticketRepoGorm) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Preload("Type").Preload("EnabledOptions").First(&ticket, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepoGorm) GetTypeByName(name string) (*models.TicketType, error) {
	var t models.TicketType
	err := r.db.Where("name = ?", name).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTicketTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepoGorm) GetAllTypes() ([]models.TicketType, error) {
	var types []models.TicketType
	if err := r.db.Order("id").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *ticketRepoGorm) GetOptionByName(name string) (*models.TicketOption, error) {
	var opt models.TicketOption
	err := r.db.Where("name = ?", name).First(&opt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTicketOptionNotFound
		}
		return nil, err
	}
	return &opt, nil
}

func (r *ticketRepoGorm) CountSoldByType(typeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).Where("ticket_type_id = ?", typeID).Count(&count).Error
	return count, err
}

// HasValidTicket is the team-eligibility check: the user owns at least one
// ticket from an approved order.
func (r *ticketRepoGorm) HasValidTicket(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).
		Where("owner_id = ? AND valid = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ticketRepoGorm) Save(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}
