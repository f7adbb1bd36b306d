package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;unique;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Books       []Book    `json:"-"`
}

// Book prices are stored in the smallest currency unit (VND has no minor
// unit, so 1 = 1 dong).
type Book struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Title             string         `gorm:"size:200;not null" json:"title"`
	Author            string         `gorm:"size:150" json:"author"`
	CategoryID        *uint          `json:"category_id"`
	Category          *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Description       string         `gorm:"type:text" json:"description"`
	Price             int64          `gorm:"not null" json:"price"`
	Stock             int            `gorm:"default:0" json:"stock"`
	LowStockThreshold int            `gorm:"default:10" json:"low_stock_threshold"`
	CoverImage        string         `gorm:"size:255" json:"cover_image"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

type StockEntry struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookID        uint      `json:"book_id"`
	Book          Book      `gorm:"foreignKey:BookID" json:"book"`
	QuantityAdded int       `json:"quantity_added"`
	AddedBy       uint      `json:"added_by"`
	User          User      `gorm:"foreignKey:AddedBy" json:"user"`
	EntryDate     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"entry_date"`
}
