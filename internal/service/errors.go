package service

import "errors"

// Checkout and payment failures surfaced to the HTTP boundary. Handlers map
// these to status codes and human-readable reasons.
var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrDiscountNotApplicable = errors.New("discount not applicable")
	ErrInsufficientPoints    = errors.New("insufficient points")
	ErrOrderRejected         = errors.New("order rejected")
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidSignature      = errors.New("invalid payment signature")
	ErrGatewayUnavailable    = errors.New("payment gateway unavailable")
	ErrAmountMismatch        = errors.New("stored order total does not match recomputed total")
)
