package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"nursery-shop/controllers"
	"nursery-shop/middleware"
	"nursery-shop/models"
	"nursery-shop/repositories"
	"nursery-shop/services"
)

func SetupRoutes(router *gin.Engine) {
	cartRepo := repositories.NewCartRepository()
	productRepo := repositories.NewProductRepository()

	mailer, err := models.NewEmailService()
	if err != nil {
		log.Printf("Sale notifications disabled: %v", err)
		mailer = nil
	}

	reservationSvc := services.NewReservationService(cartRepo)
	stockSvc := services.NewStockService(productRepo, reservationSvc)
	cartSvc := services.NewCartService(cartRepo, productRepo, mailer)

	authCtrl := controllers.NewAuthController(services.NewAuthService())
	productCtrl := controllers.NewProductController(services.NewProductService(), stockSvc, reservationSvc)
	cartCtrl := controllers.NewCartController(cartSvc)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.POST("/products/:id/stock", productCtrl.CheckStock)
	router.POST("/products/:id/reduce-stock", productCtrl.ReduceStock)

	router.POST("/cart/save", cartCtrl.SaveCart)
	router.POST("/cart/:id/customer-info", cartCtrl.SetCustomerInfo)

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.EditorMiddleware())
	{
		admin.GET("/carts", cartCtrl.GetActiveCarts)
		admin.POST("/carts/:id/sell", cartCtrl.SellCart)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.GET("/products/:id/reservations", productCtrl.GetProductReservations)
	}
}
