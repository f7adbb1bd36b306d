package handler

import (
	"errors"
	"net/http"

	"bookstore-app/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps checkout/payment failures to HTTP responses.
// Validation failures carry their specific reason so the shopper can correct
// input; everything else degrades to a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrDiscountNotApplicable),
		errors.Is(err, service.ErrInsufficientPoints),
		errors.Is(err, service.ErrOrderRejected):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, service.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment gateway unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
