package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/enums"
)

// User is the authentication identity behind every account. Admin
// accounts pair a User row with an AdminProfile row.
type User struct {
	ID                 uint               `gorm:"primaryKey" json:"id"`
	Email              string             `gorm:"size:255;uniqueIndex:idx_users_email,where:deleted_at IS NULL" json:"email"`
	PasswordHash       string             `gorm:"size:255" json:"-"`
	AccountType        enums.AccountType  `gorm:"size:32;index" json:"accountType"`
	AuthProvider       enums.AuthProvider `gorm:"size:32;default:local" json:"authProvider"`
	IsActive           bool               `gorm:"default:true" json:"isActive"`
	LastPasswordChange *time.Time         `json:"lastPasswordChange,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"deletedAt,omitempty"`
}

func (User) TableName() string {
	return "users"
}
