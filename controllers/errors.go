package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"nursery-shop/models"
)

// respondError maps the service error taxonomy onto HTTP statuses. Store
// failures get 503 so callers know to retry; a partial sale gets 500 with an
// explicit reconciliation message because retrying would decrement twice.
func respondError(c *gin.Context, err error) {
	var insufficient *models.InsufficientStockError
	var partial *models.PartialSaleError

	switch {
	case errors.Is(err, models.ErrCartNotFound):
		c.JSON(404, gin.H{"success": false, "message": "Cart not found"})
	case errors.Is(err, models.ErrProductNotFound):
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
	case errors.Is(err, models.ErrCartNotActive):
		c.JSON(400, gin.H{"success": false, "message": "Cart is not active"})
	case errors.Is(err, models.ErrInvalidQuantity):
		c.JSON(400, gin.H{"success": false, "message": "Item quantity must be positive"})
	case errors.As(err, &insufficient):
		c.JSON(400, gin.H{"success": false, "message": insufficient.Error()})
	case errors.As(err, &partial):
		c.JSON(500, gin.H{
			"success": false,
			"message": "Sale partially applied, manual reconciliation required",
			"error":   partial.Error(),
		})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(503, gin.H{"success": false, "message": "Store temporarily unavailable, please retry"})
	default:
		c.JSON(500, gin.H{"success": false, "message": "Internal server error", "error": err.Error()})
	}
}
