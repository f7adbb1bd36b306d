package service

import (
	"context"
	"fmt"
	"net/url"

	"bookstore-app/internal/models"
	"bookstore-app/internal/pricing"
	"bookstore-app/internal/vnpay"
)

// Points accrued on a completed online payment: 1% of the paid total.
const accrualDivisor = 100

type PaymentService struct {
	store   Store
	gateway *vnpay.Client
}

func NewPaymentService(store Store, gateway *vnpay.Client) *PaymentService {
	return &PaymentService{store: store, gateway: gateway}
}

// ConfirmResult is the outcome of processing one gateway callback.
type ConfirmResult struct {
	OrderID      uint   `json:"order_id"`
	Paid         bool   `json:"paid"`
	Duplicate    bool   `json:"duplicate"`
	ResponseCode string `json:"response_code"`
}

// Initiate builds the signed redirect URL for an order's online payment.
// The payable amount is recomputed from the stored line-item snapshot and
// must equal the total persisted at checkout; a mismatch means the order
// record was corrupted and the payment must not proceed. Order state is not
// mutated.
func (s *PaymentService) Initiate(ctx context.Context, orderID, userID uint, clientIP string) (string, error) {
	order, err := s.store.FindOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.UserID != userID {
		return "", ErrOrderNotFound
	}
	if order.PaymentMethod != models.PaymentMethodOnline {
		return "", fmt.Errorf("%w: order is not an online payment", ErrOrderRejected)
	}
	if order.PaymentStatus == models.PaymentStatusCompleted {
		return "", fmt.Errorf("%w: order is already paid", ErrOrderRejected)
	}

	var subtotal int64
	for _, item := range order.Items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	recomputed := pricing.Total(subtotal, order.DiscountAmount, order.PointsUsed, order.ShippingFee)
	if recomputed != order.TotalAmount {
		return "", ErrAmountMismatch
	}

	return s.gateway.BuildPaymentURL(vnpay.PaymentRequest{
		OrderID:  order.ID,
		Amount:   order.TotalAmount,
		ClientIP: clientIP,
	}), nil
}

// Confirm processes a gateway callback. It fails closed on any signature
// problem, leaving the order untouched. A verified success callback performs
// the conditional Pending->Completed transition; redelivered success
// callbacks are no-ops reported as duplicates. A verified non-success code
// leaves the order Pending so the shopper can retry payment.
func (s *PaymentService) Confirm(ctx context.Context, params url.Values) (*ConfirmResult, error) {
	data, err := s.gateway.VerifyCallback(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	order, err := s.store.FindOrder(ctx, data.OrderID)
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{OrderID: order.ID, ResponseCode: data.ResponseCode}
	if data.ResponseCode != vnpay.ResponseCodeSuccess {
		return result, nil
	}

	changed, err := s.store.MarkOrderPaid(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	result.Paid = true
	result.Duplicate = !changed

	// Side effects tied to completion run only on the first transition.
	if changed {
		if earned := order.TotalAmount / accrualDivisor; earned > 0 {
			if err := s.store.AwardPoints(ctx, order.UserID, earned); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}
