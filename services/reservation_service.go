package services

import (
	"context"
	"log"

	"nursery-shop/models"
)

// CartStore is the TTL-backed cart persistence the reservation subsystem
// runs against.
type CartStore interface {
	Save(ctx context.Context, cart *models.Cart) error
	Get(ctx context.Context, id string) (*models.Cart, error)
	ListActive(ctx context.Context) ([]models.Cart, error)
}

// ReservationService derives reserved quantities from the live cart set.
// Reservations are never stored as their own records: a cart that expires or
// sells drops out of the scan on its own, so there is no cleanup path to get
// wrong.
type ReservationService struct {
	carts CartStore
}

func NewReservationService(carts CartStore) *ReservationService {
	return &ReservationService{carts: carts}
}

// ReservedQuantity sums the units held by active carts against one product
// bucket. An empty tag selection counts only untagged items (the general
// bucket); a non-empty selection counts items whose tags intersect it.
func (s *ReservationService) ReservedQuantity(ctx context.Context, productID string, tagIDs []string) (int, error) {
	carts, err := s.carts.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	reserved := 0
	for _, cart := range carts {
		for _, item := range cart.Items {
			if item.MatchesSelection(productID, tagIDs) {
				reserved += item.Quantity
			}
		}
	}
	if reserved < 0 {
		// Saves reject non-positive quantities, but a blob written by an
		// older client could still carry one.
		log.Printf("negative reservation sum clamped: product=%s sum=%d", productID, reserved)
		reserved = 0
	}
	return reserved, nil
}

// ReservationsForProduct lists every active cart's claim on a product,
// regardless of bucket. Used by the admin view to show who holds what and
// until when.
func (s *ReservationService) ReservationsForProduct(ctx context.Context, productID string) ([]models.ReservedStock, error) {
	carts, err := s.carts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	reservations := []models.ReservedStock{}
	for _, cart := range carts {
		for _, item := range cart.Items {
			if item.ProductID != productID {
				continue
			}
			reservations = append(reservations, models.ReservedStock{
				ProductID:    item.ProductID,
				SelectedTags: item.SelectedTags,
				Quantity:     item.Quantity,
				CartID:       cart.ID,
				ExpiresAt:    cart.ExpiresAt,
			})
		}
	}
	return reservations, nil
}
