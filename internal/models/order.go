package models

import (
	"time"
)

const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "Online"

	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"

	OrderStatusAwaitingConfirmation = "AwaitingConfirmation"
	OrderStatusProcessing           = "Processing"
	OrderStatusShipped              = "Shipped"
	OrderStatusDelivered            = "Delivered"
	OrderStatusCancelled            = "Cancelled"
)

// orderTransitions lists the allowed order status moves. Cancellation is only
// possible before the order ships; Delivered and Cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusAwaitingConfirmation: {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:           {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:              {OrderStatusDelivered},
}

// CanTransitionOrderStatus reports whether an order may move from one status
// to another.
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is immutable once created except for its status fields: paymentStatus
// is advanced by payment confirmation, orderStatus by admin actions. Amounts
// and line items are snapshots taken at checkout time and are never re-read
// from the live catalog.
type Order struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	UserID           uint        `gorm:"not null;index" json:"user_id"`
	User             User        `gorm:"foreignKey:UserID" json:"-"`
	Items            []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	DiscountID       *uint       `json:"discount_id"`
	Discount         *Discount   `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Subtotal         int64       `gorm:"not null" json:"subtotal"`
	DiscountAmount   int64       `gorm:"not null;default:0" json:"discount_amount"`
	PointsUsed       int64       `gorm:"not null;default:0" json:"points_used"`
	ShippingFee      int64       `gorm:"not null;default:0" json:"shipping_fee"`
	TotalAmount      int64       `gorm:"not null" json:"total_amount"`
	PaymentMethod    string      `gorm:"type:enum('COD','Online');not null" json:"payment_method"`
	PaymentStatus    string      `gorm:"type:enum('Pending','Completed');default:'Pending'" json:"payment_status"`
	OrderStatus      string      `gorm:"type:enum('AwaitingConfirmation','Processing','Shipped','Delivered','Cancelled');default:'AwaitingConfirmation'" json:"order_status"`
	ShippingName     string      `gorm:"size:100;not null" json:"shipping_name"`
	ShippingPhone    string      `gorm:"size:15;not null" json:"shipping_phone"`
	ShippingAddress  string      `gorm:"type:text;not null" json:"shipping_address"`
	ShippingProvince string      `gorm:"size:100" json:"shipping_province"`
	TrackingNumber   *string     `gorm:"size:50;unique" json:"tracking_number,omitempty"`
	ExpectedDelivery *time.Time  `json:"expected_delivery,omitempty"`
	Notes            string      `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderItem captures the unit price at order time.
type OrderItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"index" json:"order_id"`
	BookID    uint  `gorm:"not null" json:"book_id"`
	Book      Book  `gorm:"foreignKey:BookID" json:"book"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	UnitPrice int64 `gorm:"not null" json:"unit_price"`
}

// CartItem is one entry of a user's persisted cart, the snapshot read at
// checkout time.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"user_id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_book" json:"book_id"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
