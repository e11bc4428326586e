package services

import (
	"context"

	"nursery-shop/models"
)

// ProductStore is the authoritative stock store. Decrements are conditional
// updates clamped at zero on the store side.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ReduceStock(ctx context.Context, id string, quantity int) (int, error)
	ReduceTagStock(ctx context.Context, id, tagID string, quantity int) (int, bool, error)
}

type StockService struct {
	products     ProductStore
	reservations *ReservationService
}

func NewStockService(products ProductStore, reservations *ReservationService) *StockService {
	return &StockService{products: products, reservations: reservations}
}

// CheckAvailability quotes whether quantity units of a product (or one of its
// variant buckets) can still be claimed once other carts' reservations are
// subtracted. The quote is advisory: nothing is locked, and the sale itself
// re-clamps at decrement time.
func (s *StockService) CheckAvailability(ctx context.Context, productID string, quantity int, tagIDs []string) (*models.StockCheckResponse, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	stock, _, _ := product.StockFor(tagIDs)
	if quantity > stock {
		return nil, &models.InsufficientStockError{
			ProductName: product.Name,
			Requested:   quantity,
			Available:   stock,
		}
	}

	reserved, err := s.reservations.ReservedQuantity(ctx, productID, tagIDs)
	if err != nil {
		return nil, err
	}

	available := stock - reserved
	if quantity > available {
		return nil, &models.InsufficientStockError{
			ProductName: product.Name,
			Requested:   quantity,
			Available:   available,
			Reserved:    reserved,
		}
	}

	return &models.StockCheckResponse{
		Stock:     stock,
		Reserved:  reserved,
		Available: available,
	}, nil
}

// ReduceStock applies a direct clamped decrement outside the cart flow. A tag
// selection hits its variant bucket when one exists and falls back to the
// general stock when it does not, same as the sell path.
func (s *StockService) ReduceStock(ctx context.Context, productID string, quantity int, tagID string) (int, error) {
	if tagID != "" {
		newStock, found, err := s.products.ReduceTagStock(ctx, productID, tagID, quantity)
		if err != nil {
			return 0, err
		}
		if found {
			return newStock, nil
		}
	}
	return s.products.ReduceStock(ctx, productID, quantity)
}
