package service

import (
	"context"
	"fmt"
	"time"

	"bookstore-app/internal/models"
	"bookstore-app/internal/pricing"
	"bookstore-app/internal/shipping"
)

type CheckoutService struct {
	store Store
	fees  *shipping.Calculator
	now   func() time.Time
}

func NewCheckoutService(store Store, fees *shipping.Calculator) *CheckoutService {
	return &CheckoutService{store: store, fees: fees, now: time.Now}
}

type ShippingInfo struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Province string `json:"province" binding:"required"`
}

type CheckoutRequest struct {
	ShippingInfo  ShippingInfo `json:"shipping_info" binding:"required"`
	PaymentMethod string       `json:"payment_method" binding:"required,oneof=COD Online"`
	DiscountCode  string       `json:"discount_code"`
	PointsUsed    int64        `json:"points_used" binding:"min=0"`
	Notes         string       `json:"notes"`
}

// PlaceOrder turns the user's cart snapshot into a persisted order. Unit
// prices are captured at this point and never re-read. All stock decrements,
// the discount usage increment and the points redemption happen inside one
// transaction guarded by conditional updates, so a concurrent checkout losing
// the race fails instead of overselling.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, req CheckoutRequest) (*models.Order, error) {
	cart, err := s.store.CartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]pricing.LineItem, 0, len(cart))
	var subtotal int64
	for _, item := range cart {
		book, err := s.store.FindBook(ctx, item.BookID)
		if err != nil {
			return nil, fmt.Errorf("%w: book %d not found", ErrOrderRejected, item.BookID)
		}
		if !book.IsActive {
			return nil, fmt.Errorf("%w: %q is no longer available", ErrOrderRejected, book.Title)
		}
		if book.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: %q has %d left", ErrInsufficientStock, book.Title, book.Stock)
		}
		lines = append(lines, pricing.LineItem{
			BookID:    book.ID,
			Quantity:  item.Quantity,
			UnitPrice: book.Price,
		})
		subtotal += book.Price * int64(item.Quantity)
	}

	var discount *models.Discount
	if req.DiscountCode != "" {
		discount, err = s.store.FindDiscountByCode(ctx, req.DiscountCode)
		if err != nil {
			return nil, err
		}
		if discount == nil || !discount.UsableAt(s.now(), subtotal) {
			return nil, ErrDiscountNotApplicable
		}
	}

	if req.PointsUsed > 0 {
		user, err := s.store.FindUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user.Points < req.PointsUsed {
			return nil, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientPoints, user.Points, req.PointsUsed)
		}
	}

	fee := s.fees.FeeFor(req.ShippingInfo.Province)

	breakdown, err := pricing.Quote(lines, discount, req.PointsUsed, fee)
	if err != nil {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:           userID,
		Subtotal:         breakdown.Subtotal,
		DiscountAmount:   breakdown.DiscountAmount,
		PointsUsed:       breakdown.PointsUsed,
		ShippingFee:      breakdown.ShippingFee,
		TotalAmount:      breakdown.Total,
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    models.PaymentStatusPending,
		OrderStatus:      models.OrderStatusAwaitingConfirmation,
		ShippingName:     req.ShippingInfo.Name,
		ShippingPhone:    req.ShippingInfo.Phone,
		ShippingAddress:  req.ShippingInfo.Address,
		ShippingProvince: req.ShippingInfo.Province,
		Notes:            req.Notes,
	}
	for _, l := range lines {
		order.Items = append(order.Items, models.OrderItem{
			BookID:    l.BookID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	if discount != nil {
		order.DiscountID = &discount.ID
	}

	err = s.store.InTx(ctx, func(tx Store) error {
		for _, l := range lines {
			if err := tx.DecrementStock(ctx, l.BookID, l.Quantity); err != nil {
				return err
			}
		}
		if discount != nil {
			if err := tx.ConsumeDiscount(ctx, discount.ID); err != nil {
				return err
			}
		}
		if req.PointsUsed > 0 {
			if err := tx.RedeemPoints(ctx, userID, req.PointsUsed); err != nil {
				return err
			}
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		return tx.ClearCart(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
