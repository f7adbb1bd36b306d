// Package pricing computes the payable total for a checkout. It is pure: all
// stock, discount-usability and point-balance checks happen in the caller.
package pricing

import (
	"errors"

	"bookstore-app/internal/models"
)

var ErrEmptyCart = errors.New("cart is empty")

// LineItem is one (unit price, quantity) pair priced at checkout time.
type LineItem struct {
	BookID    uint
	Quantity  int
	UnitPrice int64
}

// Breakdown is the result of pricing a cart. All amounts are in the smallest
// currency unit.
type Breakdown struct {
	Subtotal       int64
	DiscountAmount int64
	PointsUsed     int64
	ShippingFee    int64
	Total          int64
}

// DiscountAmount returns the amount a discount takes off the given subtotal.
// Percentage discounts use integer division, so fractional amounts round down.
func DiscountAmount(d *models.Discount, subtotal int64) int64 {
	if d == nil {
		return 0
	}
	if d.Type == models.DiscountTypePercentage {
		return subtotal * d.Value / 100
	}
	return d.Value
}

// Total applies the fixed formula to already-computed components:
// subtotal + shippingFee - discountAmount - pointsUsed, clamped at zero.
// Payment initiation re-runs this over an order's stored snapshot as a
// consistency check.
func Total(subtotal, discountAmount, pointsUsed, shippingFee int64) int64 {
	total := subtotal + shippingFee - discountAmount - pointsUsed
	if total < 0 {
		total = 0
	}
	return total
}

// Quote computes the payable total in a fixed order: subtotal, then discount,
// then shipping fee and points, clamped at zero. The order matters because
// percentage discounts apply to the subtotal only, never to the shipping fee.
func Quote(lines []LineItem, discount *models.Discount, pointsUsed, shippingFee int64) (Breakdown, error) {
	if len(lines) == 0 {
		return Breakdown{}, ErrEmptyCart
	}

	var subtotal int64
	for _, l := range lines {
		subtotal += l.UnitPrice * int64(l.Quantity)
	}

	discountAmount := DiscountAmount(discount, subtotal)

	total := Total(subtotal, discountAmount, pointsUsed, shippingFee)

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		PointsUsed:     pointsUsed,
		ShippingFee:    shippingFee,
		Total:          total,
	}, nil
}
