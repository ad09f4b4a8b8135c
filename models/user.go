// models/user.go
package models

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type User struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Username       string  `gorm:"not null" json:"username"`
	Email          string  `gorm:"not null" json:"email"`
	HashedPassword string  `gorm:"not null" json:"-"`
	IsAdmin        bool    `gorm:"default:false" json:"is_admin"`
	Locked         bool    `gorm:"default:false" json:"locked"`
	Profile        Profile `gorm:"foreignKey:UserID" json:"profile"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Accounts are never hard-deleted; a locked user cannot log in.
func (u *User) Enabled() bool {
	return !u.Locked
}

// Usernames and emails are matched case-insensitively everywhere.
func (u *User) HasUsername(username string) bool {
	return strings.EqualFold(u.Username, username)
}

type Profile struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	UserID      uint       `gorm:"uniqueIndex;not null" json:"-"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DisplayName string     `json:"display_name"`
	Birthday    *time.Time `json:"birthday,omitempty"`
	Gender      Gender     `json:"gender"`
	Address     string     `json:"address"`
	Zipcode     string     `json:"zipcode"`
	City        string     `json:"city"`
	PhoneNumber string     `json:"phone_number"`
	Notes       string     `json:"notes"`
}

// SetAllFields replaces every profile attribute at once. Profiles are only
// mutated via full replace, partial updates are not supported.
func (p *Profile) SetAllFields(firstName, lastName, displayName string, birthday *time.Time, gender Gender,
	address, zipcode, city, phoneNumber, notes string) {
	p.FirstName = firstName
	p.LastName = lastName
	p.DisplayName = displayName
	p.Birthday = birthday
	p.Gender = gender
	p.Address = address
	p.Zipcode = zipcode
	p.City = city
	p.PhoneNumber = phoneNumber
	p.Notes = notes
}
