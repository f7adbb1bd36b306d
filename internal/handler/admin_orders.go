package handler

import (
	"fmt"
	"net/http"
	"time"

	"bookstore-app/internal/models"
	"bookstore-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type AdminOrderHandler struct{}

func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	page := 1
	limit := 20

	if c.Query("page") != "" {
		fmt.Sscanf(c.Query("page"), "%d", &page)
	}
	if c.Query("limit") != "" {
		fmt.Sscanf(c.Query("limit"), "%d", &limit)
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("order_status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var total int64
	query.Count(&total)

	var orders []models.Order
	if err := query.Preload("Items").Preload("Items.Book").Preload("User").
		Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  orders,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

type UpdateOrderStatusRequest struct {
	Status           string     `json:"status" binding:"required,oneof=Processing Shipped Delivered Cancelled"`
	TrackingNumber   *string    `json:"tracking_number"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
}

// UpdateOrderStatus advances an order through the status machine. The write
// is conditional on the current status so two concurrent admin actions
// cannot both apply.
func (h *AdminOrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !models.CanTransitionOrderStatus(order.OrderStatus, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot move order from %s to %s", order.OrderStatus, req.Status),
		})
		return
	}

	updates := map[string]interface{}{"order_status": req.Status}
	if req.Status == models.OrderStatusShipped {
		if req.TrackingNumber == nil || *req.TrackingNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tracking number required to ship"})
			return
		}
		updates["tracking_number"] = *req.TrackingNumber
		if req.ExpectedDelivery != nil {
			updates["expected_delivery"] = *req.ExpectedDelivery
		}
	}

	res := database.DB.Model(&models.Order{}).
		Where("id = ? AND order_status = ?", order.ID, order.OrderStatus).
		Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "status": req.Status})
}

// GetDashboardStats aggregates today's order and revenue numbers.
func (h *AdminOrderHandler) GetDashboardStats(c *gin.Context) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var ordersToday int64
	database.DB.Model(&models.Order{}).Where("created_at >= ?", startOfDay).Count(&ordersToday)

	var revenueToday int64
	database.DB.Model(&models.Order{}).
		Where("created_at >= ? AND payment_status = ?", startOfDay, models.PaymentStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenueToday)

	var awaiting int64
	database.DB.Model(&models.Order{}).
		Where("order_status = ?", models.OrderStatusAwaitingConfirmation).Count(&awaiting)

	c.JSON(http.StatusOK, gin.H{
		"orders_today":          ordersToday,
		"revenue_today":         revenueToday,
		"awaiting_confirmation": awaiting,
	})
}
