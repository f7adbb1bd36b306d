package main

import (
	"log"
	"time"

	"bookstore-app/config"
	"bookstore-app/internal/handler"
	"bookstore-app/internal/middleware"
	"bookstore-app/internal/models"
	"bookstore-app/internal/service"
	"bookstore-app/internal/shipping"
	"bookstore-app/internal/store"
	"bookstore-app/internal/vnpay"
	"bookstore-app/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")

	err := database.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Book{},
		&models.StockEntry{},
		&models.Discount{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedRolesAndAdmin()

	// 4. Wire Services
	st := store.New(database.DB)
	fees := shipping.NewCalculator(config.AppConfig.Shipping.Zones, config.AppConfig.Shipping.DefaultFee)
	gateway := vnpay.New(vnpay.Config{
		TmnCode:    config.AppConfig.VNPay.TmnCode,
		HashSecret: config.AppConfig.VNPay.HashSecret,
		PayURL:     config.AppConfig.VNPay.PayURL,
		ReturnURL:  config.AppConfig.VNPay.ReturnURL,
	})
	checkoutService := service.NewCheckoutService(st, fees)
	paymentService := service.NewPaymentService(st, gateway)

	// 5. Initialize Router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 6. Setup Routes
	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	catalogHandler := &handler.CatalogHandler{}
	publicRoutes := r.Group("/api/v1/catalog")
	{
		publicRoutes.GET("/books", catalogHandler.ListBooks)
		publicRoutes.GET("/books/:id", catalogHandler.GetBook)
		publicRoutes.GET("/categories", catalogHandler.ListCategories)
	}

	cartHandler := &handler.CartHandler{}
	cartRoutes := r.Group("/api/v1/cart")
	cartRoutes.Use(middleware.AuthMiddleware())
	{
		cartRoutes.GET("", cartHandler.ListCart)
		cartRoutes.POST("/items", cartHandler.UpsertItem)
		cartRoutes.DELETE("/items/:bookId", cartHandler.RemoveItem)
		cartRoutes.DELETE("", cartHandler.ClearCart)
	}

	discountHandler := &handler.DiscountHandler{}
	r.POST("/api/v1/discounts/check", middleware.AuthMiddleware(), discountHandler.CheckDiscount)

	checkoutHandler := &handler.CheckoutHandler{Checkout: checkoutService}
	orderRoutes := r.Group("/api/v1/orders")
	orderRoutes.Use(middleware.AuthMiddleware())
	{
		orderRoutes.POST("", checkoutHandler.SubmitOrder)
		orderRoutes.GET("", checkoutHandler.ListMyOrders)
		orderRoutes.GET("/:id", checkoutHandler.GetMyOrder)
		orderRoutes.PUT("/:id/cancel", checkoutHandler.CancelOrder)
	}

	paymentHandler := &handler.PaymentHandler{Payments: paymentService}
	r.POST("/api/v1/payments/initiate", middleware.AuthMiddleware(), paymentHandler.InitiatePayment)
	// Gateway redirects the shopper here; no session token on this request.
	r.GET("/api/v1/payments/vnpay/return", paymentHandler.VNPayReturn)

	adminOrderHandler := &handler.AdminOrderHandler{}
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware("admin"))
	{
		adminRoutes.POST("/books", catalogHandler.CreateBook)
		adminRoutes.PUT("/books/:id", catalogHandler.UpdateBook)
		adminRoutes.POST("/stock", catalogHandler.AddStock)
		adminRoutes.GET("/alerts", catalogHandler.GetLowStockAlerts)
		adminRoutes.POST("/categories", catalogHandler.CreateCategory)

		adminRoutes.POST("/discounts", discountHandler.CreateDiscount)
		adminRoutes.GET("/discounts", discountHandler.ListDiscounts)
		adminRoutes.PUT("/discounts/:id", discountHandler.UpdateDiscount)

		adminRoutes.GET("/orders", adminOrderHandler.ListOrders)
		adminRoutes.PUT("/orders/:id/status", adminOrderHandler.UpdateOrderStatus)
		adminRoutes.GET("/dashboard", adminOrderHandler.GetDashboardStats)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 7. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
