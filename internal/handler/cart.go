package handler

import (
	"net/http"

	"bookstore-app/internal/models"
	"bookstore-app/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

type CartHandler struct{}

func (h *CartHandler) ListCart(c *gin.Context) {
	userID := c.GetUint("userID")

	var items []models.CartItem
	if err := database.DB.Preload("Book").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.Book.Price * int64(item.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": subtotal})
}

type UpsertCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

func (h *CartHandler) UpsertItem(c *gin.Context) {
	var req UpsertCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")

	var book models.Book
	if err := database.DB.Where("id = ? AND is_active = ?", req.BookID, true).First(&book).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Book not available"})
		return
	}

	item := models.CartItem{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	}
	// One row per (user, book); a second add replaces the quantity.
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetUint("userID")
	bookID := c.Param("bookId")

	res := database.DB.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&models.CartItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetUint("userID")
	if err := database.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
