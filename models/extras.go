// models/extras.go - mail subscriptions, banners and RFID links
package models

import "time"

// Subscription is a standalone mailing-list opt-in, unrelated to accounts.
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Banner is shown on the site while today falls within its date range.
type Banner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
}

func (b *Banner) ActiveAt(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	return !day.Before(b.StartDate) && !day.After(b.EndDate)
}

// RFIDLink couples a wristband to a ticket at the entrance desk. Both
// sides are unique: one band per ticket, one ticket per band.
type RFIDLink struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RFID     string `gorm:"uniqueIndex;not null;size:32" json:"rfid"`
	TicketID uint   `gorm:"uniqueIndex;not null" json:"ticket_id"`
	Ticket   Ticket `gorm:"foreignKey:TicketID" json:"-"`
}
