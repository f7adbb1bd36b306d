package handler

import (
	"net/http"
	"regexp"
	"time"

	"bookstore-app/internal/models"
	"bookstore-app/internal/pricing"
	"bookstore-app/pkg/database"

	"github.com/gin-gonic/gin"
)

type DiscountHandler struct{}

var discountCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

type CreateDiscountRequest struct {
	Code        string    `json:"code" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=fixed percentage"`
	Value       int64     `json:"value" binding:"required,min=1"`
	MinPurchase int64     `json:"min_purchase" binding:"min=0"`
	UsageLimit  int       `json:"usage_limit" binding:"required,min=1"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

func (h *DiscountHandler) CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !discountCodePattern.MatchString(req.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code must be 6 uppercase alphanumeric characters"})
		return
	}
	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}
	if req.Type == models.DiscountTypePercentage && req.Value > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage value must be between 1 and 100"})
		return
	}

	discount := models.Discount{
		Code:        req.Code,
		Type:        req.Type,
		Value:       req.Value,
		MinPurchase: req.MinPurchase,
		UsageLimit:  req.UsageLimit,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    true,
	}
	if err := database.DB.Create(&discount).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Code already exists"})
		return
	}

	c.JSON(http.StatusCreated, discount)
}

func (h *DiscountHandler) ListDiscounts(c *gin.Context) {
	var discounts []models.Discount
	if err := database.DB.Order("created_at desc").Find(&discounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discounts"})
		return
	}
	c.JSON(http.StatusOK, discounts)
}

type UpdateDiscountRequest struct {
	IsActive   *bool      `json:"is_active"`
	UsageLimit *int       `json:"usage_limit"`
	EndDate    *time.Time `json:"end_date"`
}

func (h *DiscountHandler) UpdateDiscount(c *gin.Context) {
	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var discount models.Discount
	if err := database.DB.First(&discount, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.UsageLimit != nil {
		if *req.UsageLimit < discount.UsedCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Usage limit cannot be below used count"})
			return
		}
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.EndDate != nil {
		if !req.EndDate.After(discount.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
			return
		}
		updates["end_date"] = *req.EndDate
	}

	if err := database.DB.Model(&discount).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update discount"})
		return
	}

	c.JSON(http.StatusOK, discount)
}

// CheckDiscount previews a code against a subtotal so the cart page can show
// the deduction before checkout. It never consumes a usage slot.
func (h *DiscountHandler) CheckDiscount(c *gin.Context) {
	var req struct {
		Code     string `json:"code" binding:"required"`
		Subtotal int64  `json:"subtotal" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var discount models.Discount
	if err := database.DB.Where("code = ?", req.Code).First(&discount).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount not applicable"})
		return
	}
	if !discount.UsableAt(time.Now(), req.Subtotal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount not applicable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":            discount.Code,
		"discount_amount": pricing.DiscountAmount(&discount, req.Subtotal),
	})
}
