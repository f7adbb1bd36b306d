package models

import (
	"time"

	"gorm.io/gorm"
)

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;unique;not null" json:"name"` // 'admin', 'customer'
	CreatedAt time.Time `json:"created_at"`
	Users     []User    `json:"-"`
}

// User carries the loyalty point balance redeemed at checkout. Points are
// denominated in the smallest currency unit (1 point = 1 dong off).
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"size:100;unique;not null" json:"email"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Phone        string         `gorm:"size:15" json:"phone"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	RoleID       uint           `json:"role_id"`
	Role         Role           `gorm:"foreignKey:RoleID" json:"role"`
	Points       int64          `gorm:"not null;default:0" json:"points"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
