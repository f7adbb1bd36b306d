package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"bookstore-app/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Payments *service.PaymentService
}

type InitiatePaymentRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
}

func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")

	paymentURL, err := h.Payments.Initiate(c.Request.Context(), req.OrderID, userID, c.ClientIP())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			respondServiceError(c, service.ErrGatewayUnavailable)
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": paymentURL})
}

// VNPayReturn handles the gateway's signed callback. Signature failures are
// logged server-side and answered with a generic message so the signing
// scheme leaks nothing to the caller. A gateway non-success code is not an
// error: the order stays Pending for a retry.
func (h *PaymentHandler) VNPayReturn(c *gin.Context) {
	result, err := h.Payments.Confirm(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			log.Printf("vnpay callback rejected: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
			return
		}
		respondServiceError(c, err)
		return
	}

	if !result.Paid {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Payment failed, you can retry from your order",
			"order_id": result.OrderID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment completed",
		"order_id": result.OrderID,
	})
}
