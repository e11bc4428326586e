package controllers

import (
	"github.com/gin-gonic/gin"

	"nursery-shop/models"
	"nursery-shop/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// SaveCart godoc
// @Summary Save cart
// @Description Persist the full cart aggregate with a renewed TTL
// @Tags Carts
// @Accept json
// @Produce json
// @Param request body models.SaveCartRequest true "Cart"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/save [post]
func (ctrl *CartController) SaveCart(c *gin.Context) {
	var req models.SaveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	cart, err := ctrl.carts.Save(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart saved", "data": cart})
}

// SetCustomerInfo godoc
// @Summary Set customer info
// @Description Merge customer contact details into an active cart
// @Tags Carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param request body models.CustomerInfoRequest true "Customer info"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{id}/customer-info [post]
func (ctrl *CartController) SetCustomerInfo(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"success": false, "message": "Cart ID is required"})
		return
	}

	var req models.CustomerInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	cart, err := ctrl.carts.SetCustomerInfo(c.Request.Context(), id, req.CustomerName, req.CustomerPhone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Customer info updated", "data": cart})
}

// GetActiveCarts godoc
// @Summary List active carts
// @Description All carts currently holding reservations (Admin/Editor)
// @Tags Admin - Carts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/carts [get]
func (ctrl *CartController) GetActiveCarts(c *gin.Context) {
	carts, err := ctrl.carts.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Active carts retrieved", "data": carts})
}

// SellCart godoc
// @Summary Sell cart
// @Description Mark a cart sold and decrement authoritative stock (Admin/Editor)
// @Tags Admin - Carts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/carts/{id}/sell [post]
func (ctrl *CartController) SellCart(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"success": false, "message": "Cart ID is required"})
		return
	}

	soldBy := c.GetString("user_name")
	if soldBy == "" {
		soldBy = c.GetString("user_email")
	}

	cart, err := ctrl.carts.MarkSold(c.Request.Context(), id, soldBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart sold", "data": cart})
}
