package handler

import (
	"net/http"

	"bookstore-app/internal/models"
	"bookstore-app/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogHandler struct{}

func (h *CatalogHandler) ListBooks(c *gin.Context) {
	query := database.DB.Preload("Category").Where("is_active = ?", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("title LIKE ? OR author LIKE ?", "%"+q+"%", "%"+q+"%")
	}

	var books []models.Book
	if err := query.Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *CatalogHandler) GetBook(c *gin.Context) {
	var book models.Book
	if err := database.DB.Preload("Category").Where("is_active = ?", true).First(&book, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

type CreateBookRequest struct {
	Title             string `json:"title" binding:"required"`
	Author            string `json:"author"`
	CategoryID        *uint  `json:"category_id"`
	Description       string `json:"description"`
	Price             int64  `json:"price" binding:"required,min=1"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	CoverImage        string `json:"cover_image"`
	OpeningStock      int    `json:"opening_stock" binding:"min=0"`
}

func (h *CatalogHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")

	tx := database.DB.Begin()

	book := models.Book{
		Title:             req.Title,
		Author:            req.Author,
		CategoryID:        req.CategoryID,
		Description:       req.Description,
		Price:             req.Price,
		Stock:             req.OpeningStock,
		LowStockThreshold: req.LowStockThreshold,
		CoverImage:        req.CoverImage,
		IsActive:          true,
	}

	if err := tx.Create(&book).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		return
	}

	if req.OpeningStock > 0 {
		entry := models.StockEntry{
			BookID:        book.ID,
			QuantityAdded: req.OpeningStock,
			AddedBy:       userID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log opening stock"})
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, book)
}

type UpdateBookRequest struct {
	Title             *string `json:"title"`
	Author            *string `json:"author"`
	CategoryID        *uint   `json:"category_id"`
	Description       *string `json:"description"`
	Price             *int64  `json:"price"`
	LowStockThreshold *int    `json:"low_stock_threshold"`
	CoverImage        *string `json:"cover_image"`
	IsActive          *bool   `json:"is_active"`
}

func (h *CatalogHandler) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var book models.Book
	if err := database.DB.First(&book, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := database.DB.Model(&book).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	c.JSON(http.StatusOK, book)
}

type AddStockRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

func (h *CatalogHandler) AddStock(c *gin.Context) {
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")

	tx := database.DB.Begin()

	if err := tx.Model(&models.Book{}).Where("id = ?", req.BookID).
		Update("stock", gorm.Expr("stock + ?", req.Quantity)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
		return
	}

	entry := models.StockEntry{
		BookID:        req.BookID,
		QuantityAdded: req.Quantity,
		AddedBy:       userID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log stock entry"})
		return
	}

	tx.Commit()
	c.JSON(http.StatusOK, gin.H{"message": "Stock added successfully"})
}

func (h *CatalogHandler) GetLowStockAlerts(c *gin.Context) {
	var books []models.Book
	if err := database.DB.Preload("Category").
		Where("stock <= low_stock_threshold AND is_active = ?", true).Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, books)
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}
