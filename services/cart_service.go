package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"nursery-shop/config"
	"nursery-shop/models"
)

// CartService drives the cart lifecycle: active carts are saved and refreshed
// by shoppers, then either sold by an editor or silently dropped by the store
// TTL. Status only ever leaves active, never returns to it.
type CartService struct {
	carts    CartStore
	products ProductStore
	mailer   *models.EmailService
}

func NewCartService(carts CartStore, products ProductStore, mailer *models.EmailService) *CartService {
	return &CartService{carts: carts, products: products, mailer: mailer}
}

// Save upserts the full cart aggregate and resets its expiry window. Totals
// are recomputed server-side; client-sent aggregates are not trusted.
func (s *CartService) Save(ctx context.Context, req models.SaveCartRequest) (*models.Cart, error) {
	// Quantities feed the reservation sum and the sale decrements; a
	// non-positive value would let a cart shrink reservations or grow stock.
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, models.ErrInvalidQuantity
		}
	}

	now := time.Now()

	cart := &models.Cart{
		ID:            req.ID,
		Items:         req.Items,
		Status:        models.CartStatusActive,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if cart.ID == "" {
		cart.ID = uuid.NewString()
	} else {
		existing, err := s.carts.Get(ctx, cart.ID)
		if err != nil && !errors.Is(err, models.ErrCartNotFound) {
			return nil, err
		}
		if existing != nil {
			if !existing.IsActive() {
				return nil, models.ErrCartNotActive
			}
			cart.CreatedAt = existing.CreatedAt
			if cart.CustomerName == "" {
				cart.CustomerName = existing.CustomerName
			}
			if cart.CustomerPhone == "" {
				cart.CustomerPhone = existing.CustomerPhone
			}
		}
	}

	cart.Recalculate()

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetCustomerInfo merges non-empty contact fields into an active cart and
// re-saves it, which also renews the TTL.
func (s *CartService) SetCustomerInfo(ctx context.Context, id, name, phone string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cart.IsActive() {
		return nil, models.ErrCartNotActive
	}

	if name != "" {
		cart.CustomerName = name
	}
	if phone != "" {
		cart.CustomerPhone = phone
	}
	cart.UpdatedAt = time.Now()

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) ListActive(ctx context.Context) ([]models.Cart, error) {
	return s.carts.ListActive(ctx)
}

// MarkSold commits a cart: every item's stock is decremented against its
// variant bucket when one exists, the general stock otherwise, each clamped
// at zero, then the cart is relabeled sold. The steps are not one
// transaction; when decrements land but the rest does not, the error says so
// explicitly because a retry would decrement again.
func (s *CartService) MarkSold(ctx context.Context, id, soldBy string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cart.IsActive() {
		return nil, models.ErrCartNotActive
	}

	applied := 0
	failed := []string{}
	var firstErr error
	for _, item := range cart.Items {
		if err := s.reduceForItem(ctx, item); err != nil {
			log.Printf("sale decrement failed: cart=%s product=%s err=%v", cart.ID, item.ProductID, err)
			failed = append(failed, item.ProductID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied++
	}
	if len(failed) > 0 {
		if applied == 0 {
			// Nothing landed; the whole operation is safely retryable.
			return nil, firstErr
		}
		return nil, &models.PartialSaleError{CartID: cart.ID, FailedProducts: failed, Err: firstErr}
	}

	now := time.Now()
	cart.Status = models.CartStatusSold
	cart.SoldAt = &now
	cart.SoldBy = soldBy
	cart.UpdatedAt = now

	if err := s.carts.Save(ctx, cart); err != nil {
		// Stock already moved; the cart still reads active.
		return nil, &models.PartialSaleError{CartID: cart.ID, Err: err}
	}

	s.notifySale(cart)

	return cart, nil
}

func (s *CartService) reduceForItem(ctx context.Context, item models.CartItem) error {
	for _, tag := range item.SelectedTags {
		_, found, err := s.products.ReduceTagStock(ctx, item.ProductID, tag.TagID, item.Quantity)
		if err != nil {
			return err
		}
		if found {
			return nil
		}
	}
	_, err := s.products.ReduceStock(ctx, item.ProductID, item.Quantity)
	return err
}

func (s *CartService) notifySale(cart *models.Cart) {
	if s.mailer == nil || config.AppConfig.SalesNotifyEmail == "" {
		return
	}
	if err := s.mailer.SendSaleNotification(config.AppConfig.SalesNotifyEmail, cart); err != nil {
		log.Printf("sale notification failed: cart=%s err=%v", cart.ID, err)
	}
}
