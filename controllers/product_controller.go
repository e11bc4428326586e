package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nursery-shop/models"
	"nursery-shop/services"
)

type ProductController struct {
	products     *services.ProductService
	stock        *services.StockService
	reservations *services.ReservationService
}

func NewProductController(products *services.ProductService, stock *services.StockService, reservations *services.ReservationService) *ProductController {
	return &ProductController{products: products, stock: stock, reservations: reservations}
}

func getProductCacheKey(page, limit int) string {
	return fmt.Sprintf("products_list_p%d_l%d", page, limit)
}

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// GetAllProducts godoc
// @Summary Get all products
// @Description Get paginated list of products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	cacheKey := getProductCacheKey(page, limit)
	ctx := c.Request.Context()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	response, err := ctrl.products.GetAllProducts(ctx, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	if models.RedisClient != nil {
		if jsonData, err := json.Marshal(response); err == nil {
			models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(200, response)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Get product details including stock buckets
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.products.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

// CreateProduct godoc
// @Summary Create product
// @Description Create a product with optional tag stock buckets (Admin/Editor)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	product, err := ctrl.products.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateProductCache()
	c.JSON(201, gin.H{"success": true, "message": "Product created", "data": product})
}

// UpdateProduct godoc
// @Summary Update product
// @Description Update product fields and tag stock buckets (Admin/Editor)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.UpdateProductRequest true "Product"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	product, err := ctrl.products.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateProductCache()
	c.JSON(200, gin.H{"success": true, "message": "Product updated", "data": product})
}

// CheckStock godoc
// @Summary Check stock availability
// @Description Quote availability for a quantity, net of other carts' reservations
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.StockCheckRequest true "Stock check"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/stock [post]
func (ctrl *ProductController) CheckStock(c *gin.Context) {
	var req models.StockCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	result, err := ctrl.stock.CheckAvailability(c.Request.Context(), c.Param("id"), req.Quantity, req.SelectedTags)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Stock available", "data": result})
}

// ReduceStock godoc
// @Summary Reduce stock
// @Description Directly decrement a stock bucket, clamped at zero
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.ReduceStockRequest true "Reduce stock"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/reduce-stock [post]
func (ctrl *ProductController) ReduceStock(c *gin.Context) {
	var req models.ReduceStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	newStock, err := ctrl.stock.ReduceStock(c.Request.Context(), c.Param("id"), req.Quantity, req.TagID)
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateProductCache()
	c.JSON(200, gin.H{"success": true, "message": "Stock reduced", "data": gin.H{"stock": newStock}})
}

// GetProductReservations godoc
// @Summary List product reservations
// @Description Active carts' claims on a product with expiry (Admin/Editor)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Router /admin/products/{id}/reservations [get]
func (ctrl *ProductController) GetProductReservations(c *gin.Context) {
	reservations, err := ctrl.reservations.ReservationsForProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Reservations retrieved", "data": reservations})
}
