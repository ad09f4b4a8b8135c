// models/team.go
package models

import "time"

type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"team_name" gorm:"not null;size:100"`
	CaptainID uint      `json:"-" gorm:"not null;index"`
	Captain   *User     `json:"captain,omitempty" gorm:"foreignKey:CaptainID"`
	Members   []User    `json:"members,omitempty" gorm:"many2many:team_members"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// HasMember reports whether the user is part of the team. The captain is
// always a member.
func (t *Team) HasMember(userID uint) bool {
	if t.CaptainID == userID {
		return true
	}
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func (t *Team) Size() int {
	return len(t.Members)
}
