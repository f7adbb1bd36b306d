package models

import (
	"time"
)

const (
	DiscountTypeFixed      = "fixed"
	DiscountTypePercentage = "percentage"
)

// Discount is a promotional code. Code is exactly 6 uppercase alphanumeric
// characters, enforced at the schema level and at the admin boundary.
// Invariants: used_count <= usage_limit, end_date > start_date.
type Discount struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"type:char(6);unique;not null" json:"code"`
	Type        string    `gorm:"type:enum('fixed','percentage');not null" json:"type"`
	Value       int64     `gorm:"not null" json:"value"`
	MinPurchase int64     `gorm:"default:0" json:"min_purchase"`
	UsageLimit  int       `gorm:"not null;default:1" json:"usage_limit"`
	UsedCount   int       `gorm:"not null;default:0" json:"used_count"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UsableAt reports whether the discount can be applied to an order with the
// given subtotal at the given time.
func (d *Discount) UsableAt(now time.Time, subtotal int64) bool {
	if !d.IsActive {
		return false
	}
	if now.Before(d.StartDate) || now.After(d.EndDate) {
		return false
	}
	if d.UsedCount >= d.UsageLimit {
		return false
	}
	return subtotal >= d.MinPurchase
}
