// models/order.go
package models

import "time"

type OrderStatus string

const (
	OrderStatusAnonymous  OrderStatus = "ANONYMOUS"
	OrderStatusAssigned   OrderStatus = "ASSIGNED"
	OrderStatusCheckedOut OrderStatus = "CHECKED_OUT"
	OrderStatusApproved   OrderStatus = "APPROVED"
)

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    *uint       `gorm:"index" json:"-"`
	User      *User       `gorm:"foreignKey:UserID" json:"user"`
	Status    OrderStatus `gorm:"type:varchar(16);not null;default:'ANONYMOUS'" json:"status"`
	Tickets   []Ticket    `gorm:"foreignKey:OrderID" json:"tickets"`
	Amount    float64     `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CalculateAmount sums every ticket's type price plus its enabled option
// prices. Callers must recompute whenever tickets change, the stored
// amount is never trusted to be fresh.
func (o *Order) CalculateAmount() float64 {
	var total float64
	for i := range o.Tickets {
		total += o.Tickets[i].Price()
	}
	return total
}

func (o *Order) Anonymous() bool {
	return o.UserID == nil
}

type TicketType struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"uniqueIndex;not null;size:64" json:"name"`
	Text     string     `gorm:"type:text" json:"text"`
	Price    float64    `gorm:"not null" json:"price"`
	Limit    int        `gorm:"column:sale_limit;default:0" json:"limit"` // 0 = unlimited
	Deadline *time.Time `json:"deadline,omitempty"`
}

// Sellable reports whether the type can still be ordered at the given time.
// The sold-out check against Limit lives with the availability counter.
func (t *TicketType) Sellable(now time.Time) bool {
	return t.Deadline == nil || now.Before(*t.Deadline)
}

// TicketOption is a priced add-on, like pickup service or a member
// discount (negative price).
type TicketOption struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"uniqueIndex;not null;size:64" json:"name"`
	Price float64 `gorm:"not null" json:"price"`
}

type Ticket struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	TicketTypeID   uint           `gorm:"not null;index" json:"-"`
	Type           TicketType     `gorm:"foreignKey:TicketTypeID" json:"type"`
	OrderID        uint           `gorm:"not null;index" json:"-"`
	OwnerID        *uint          `gorm:"index" json:"owner_id,omitempty"`
	Valid          bool           `gorm:"default:false" json:"valid"`
	EnabledOptions []TicketOption `gorm:"many2many:ticket_enabled_options" json:"enabledOptions"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (t *Ticket) Price() float64 {
	price := t.Type.Price
	for _, opt := range t.EnabledOptions {
		price += opt.Price
	}
	return price
}
