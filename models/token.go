// models/token.go
package models

import "time"

// AuthenticationToken is an opaque login token. A token is usable until it
// is invalidated at logout or its expiry passes; expiry is checked at
// lookup time, nothing sweeps tokens in the background.
type AuthenticationToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Valid     bool      `gorm:"default:true" json:"valid"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *AuthenticationToken) Usable(now time.Time) bool {
	return t.Valid && now.Before(t.ExpiresAt)
}

// TeamInviteToken links an invited user to a team. Single use: accepting
// or declining marks it invalid, and only one valid token may exist per
// (user, team) pair at a time.
type TeamInviteToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Team      *Team     `gorm:"foreignKey:TeamID" json:"-"`
	Valid     bool      `gorm:"default:true" json:"valid"`
	CreatedAt time.Time `json:"created_at"`
}
