package handler

import (
	"net/http"

	"bookstore-app/internal/models"
	"bookstore-app/internal/service"
	"bookstore-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	Checkout *service.CheckoutService
}

// SubmitOrder turns the caller's cart into an order. The response carries the
// created order including the computed total.
func (h *CheckoutHandler) SubmitOrder(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")

	order, err := h.Checkout.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
		"total":   order.TotalAmount,
	})
}

func (h *CheckoutHandler) ListMyOrders(c *gin.Context) {
	userID := c.GetUint("userID")

	var orders []models.Order
	if err := database.DB.Preload("Items").Preload("Items.Book").
		Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *CheckoutHandler) GetMyOrder(c *gin.Context) {
	userID := c.GetUint("userID")

	var order models.Order
	if err := database.DB.Preload("Items").Preload("Items.Book").Preload("Discount").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder lets a shopper cancel before the order ships, via the same
// state machine the admin flow uses.
func (h *CheckoutHandler) CancelOrder(c *gin.Context) {
	userID := c.GetUint("userID")

	var order models.Order
	if err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !models.CanTransitionOrderStatus(order.OrderStatus, models.OrderStatusCancelled) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order can no longer be cancelled"})
		return
	}

	res := database.DB.Model(&models.Order{}).
		Where("id = ? AND order_status = ?", order.ID, order.OrderStatus).
		Update("order_status", models.OrderStatusCancelled)
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
