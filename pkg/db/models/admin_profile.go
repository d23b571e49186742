package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminProfile holds the person-facing half of an admin account,
// one-to-one with a User row.
type AdminProfile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"userId"`
	User           *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FirstName      string         `gorm:"size:100" json:"firstName"`
	LastName       string         `gorm:"size:100" json:"lastName"`
	PhoneNumber    string         `gorm:"size:32" json:"phoneNumber,omitempty"`
	Address        string         `gorm:"size:255" json:"address,omitempty"`
	City           string         `gorm:"size:100" json:"city,omitempty"`
	Bio            string         `gorm:"size:1000" json:"bio,omitempty"`
	ProfilePicture string         `gorm:"size:512" json:"profilePicture,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}
