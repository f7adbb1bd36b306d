package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"bookstore-app/internal/models"
	"bookstore-app/internal/vnpay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashSecret = "unit-test-secret"

func newPaymentFixture() (*memStore, *PaymentService) {
	st := newMemStore()
	gateway := vnpay.New(vnpay.Config{
		TmnCode:    "DEMOTMN1",
		HashSecret: testHashSecret,
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "https://shop.example.com/api/v1/payments/vnpay/return",
	})
	return st, NewPaymentService(st, gateway)
}

func seedPendingOrder(st *memStore, userID uint, total int64) *models.Order {
	order := &models.Order{
		UserID: userID,
		Items: []models.OrderItem{
			{BookID: 10, Quantity: 2, UnitPrice: (total - 20000) / 2},
		},
		Subtotal:      total - 20000,
		ShippingFee:   20000,
		TotalAmount:   total,
		PaymentMethod: models.PaymentMethodOnline,
		PaymentStatus: models.PaymentStatusPending,
		OrderStatus:   models.OrderStatusAwaitingConfirmation,
	}
	st.data.users[userID] = &models.User{ID: userID, IsActive: true}
	st.data.createOrder(order)
	return st.data.orders[order.ID]
}

func successCallback(orderID uint, total int64) url.Values {
	params := map[string]string{
		"vnp_TxnRef":       "1710498600000000000",
		"vnp_OrderInfo":    strconv.FormatUint(uint64(orderID), 10),
		"vnp_Amount":       strconv.FormatInt(total*100, 10),
		"vnp_ResponseCode": "00",
		"vnp_BankCode":     "NCB",
	}
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("vnp_SecureHash", vnpay.Sign(params, testHashSecret))
	return values
}

func TestInitiateReturnsSignedURL(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)

	paymentURL, err := svc.Initiate(context.Background(), order.ID, 1, "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(paymentURL, "https://sandbox.vnpayment.vn/"))
	assert.Contains(t, paymentURL, "vnp_SecureHash=")
	assert.Contains(t, paymentURL, "vnp_Amount=29000000")
}

func TestInitiateRejectsForeignOrder(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)

	_, err := svc.Initiate(context.Background(), order.ID, 2, "203.0.113.9")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestInitiateRejectsCODOrder(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)
	st.data.orders[order.ID].PaymentMethod = models.PaymentMethodCOD

	_, err := svc.Initiate(context.Background(), order.ID, 1, "203.0.113.9")
	assert.ErrorIs(t, err, ErrOrderRejected)
}

func TestInitiateRejectsPaidOrder(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)
	st.data.orders[order.ID].PaymentStatus = models.PaymentStatusCompleted

	_, err := svc.Initiate(context.Background(), order.ID, 1, "203.0.113.9")
	assert.ErrorIs(t, err, ErrOrderRejected)
}

func TestInitiateDetectsCorruptedTotal(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)
	st.data.orders[order.ID].TotalAmount = 123456 // no longer matches the snapshot

	_, err := svc.Initiate(context.Background(), order.ID, 1, "203.0.113.9")
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestConfirmSuccessMarksPaidAndAccruesPoints(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)

	result, err := svc.Confirm(context.Background(), successCallback(order.ID, 290000))
	require.NoError(t, err)
	assert.True(t, result.Paid)
	assert.False(t, result.Duplicate)

	assert.Equal(t, models.PaymentStatusCompleted, st.data.orders[order.ID].PaymentStatus)
	assert.Equal(t, int64(2900), st.data.users[1].Points, "1% of the paid total accrued")
}

func TestConfirmIsIdempotent(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)
	callback := successCallback(order.ID, 290000)

	first, err := svc.Confirm(context.Background(), callback)
	require.NoError(t, err)
	require.True(t, first.Paid)

	second, err := svc.Confirm(context.Background(), callback)
	require.NoError(t, err)
	assert.True(t, second.Paid)
	assert.True(t, second.Duplicate)

	assert.Equal(t, models.PaymentStatusCompleted, st.data.orders[order.ID].PaymentStatus)
	assert.Equal(t, int64(2900), st.data.users[1].Points, "points accrued exactly once")
}

func TestConfirmTamperedAmountFailsClosed(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)

	callback := successCallback(order.ID, 290000)
	callback.Set("vnp_Amount", "100") // original hash, tampered amount

	result, err := svc.Confirm(context.Background(), callback)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, models.PaymentStatusPending, st.data.orders[order.ID].PaymentStatus, "order untouched")
}

func TestConfirmUnknownOrder(t *testing.T) {
	_, svc := newPaymentFixture()

	_, err := svc.Confirm(context.Background(), successCallback(999, 290000))
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestConfirmFailureCodeLeavesOrderPending(t *testing.T) {
	st, svc := newPaymentFixture()
	order := seedPendingOrder(st, 1, 290000)

	params := map[string]string{
		"vnp_TxnRef":       "1710498600000000000",
		"vnp_OrderInfo":    strconv.FormatUint(uint64(order.ID), 10),
		"vnp_Amount":       "29000000",
		"vnp_ResponseCode": "24", // shopper cancelled at the gateway
	}
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	values.Set("vnp_SecureHash", vnpay.Sign(params, testHashSecret))

	result, err := svc.Confirm(context.Background(), values)
	require.NoError(t, err)
	assert.False(t, result.Paid)
	assert.Equal(t, "24", result.ResponseCode)
	assert.Equal(t, models.PaymentStatusPending, st.data.orders[order.ID].PaymentStatus)
	assert.Zero(t, st.data.users[1].Points, "no accrual on failed payment")
}
