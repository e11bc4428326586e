package services

import (
	"context"
	"errors"
	"testing"

	"nursery-shop/models"
)

func TestSaveCart(t *testing.T) {
	t.Run("new cart gets id, totals and active status", func(t *testing.T) {
		store := newFakeCartStore()
		svc := NewCartService(store, newFakeProductStore(), nil)

		cart, err := svc.Save(context.Background(), models.SaveCartRequest{
			Items: []models.CartItem{
				{ProductID: "rose", Quantity: 2, Price: 15.5},
				{ProductID: "fern", Quantity: 1, Price: 8},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart.ID == "" {
			t.Fatal("expected a generated cart id")
		}
		if cart.Status != models.CartStatusActive {
			t.Fatalf("status = %s, want active", cart.Status)
		}
		if cart.TotalItems != 3 {
			t.Fatalf("total items = %d, want 3", cart.TotalItems)
		}
		if cart.TotalPrice != 39 {
			t.Fatalf("total price = %v, want 39", cart.TotalPrice)
		}
		if _, err := store.Get(context.Background(), cart.ID); err != nil {
			t.Fatalf("cart not persisted: %v", err)
		}
	})

	t.Run("client-sent totals are ignored", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), newFakeProductStore(), nil)

		cart, err := svc.Save(context.Background(), models.SaveCartRequest{
			Items: []models.CartItem{{ProductID: "rose", Quantity: 2, Price: 10, TotalPrice: 9999}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart.Items[0].TotalPrice != 20 {
			t.Fatalf("item total = %v, want recomputed 20", cart.Items[0].TotalPrice)
		}
	})

	t.Run("resave keeps creation time and customer info", func(t *testing.T) {
		store := newFakeCartStore()
		svc := NewCartService(store, newFakeProductStore(), nil)

		first, err := svc.Save(context.Background(), models.SaveCartRequest{
			Items:        []models.CartItem{{ProductID: "rose", Quantity: 1, Price: 10}},
			CustomerName: "Rosa",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, err := svc.Save(context.Background(), models.SaveCartRequest{
			ID:    first.ID,
			Items: []models.CartItem{{ProductID: "rose", Quantity: 3, Price: 10}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !second.CreatedAt.Equal(first.CreatedAt) {
			t.Fatal("resave must keep the original creation time")
		}
		if second.CustomerName != "Rosa" {
			t.Fatalf("customer name = %q, want carried over", second.CustomerName)
		}
		if second.TotalItems != 3 {
			t.Fatalf("total items = %d, want 3", second.TotalItems)
		}
	})

	t.Run("non-positive quantities are rejected", func(t *testing.T) {
		store := newFakeCartStore()
		svc := NewCartService(store, newFakeProductStore(), nil)

		for _, qty := range []int{-5, 0} {
			_, err := svc.Save(context.Background(), models.SaveCartRequest{
				Items: []models.CartItem{{ProductID: "rose", Quantity: qty, Price: 10}},
			})
			if !errors.Is(err, models.ErrInvalidQuantity) {
				t.Fatalf("quantity %d: expected invalid quantity, got %v", qty, err)
			}
		}
		if len(store.carts) != 0 {
			t.Fatalf("rejected cart must not be persisted, store has %d", len(store.carts))
		}
	})

	t.Run("sold cart cannot be overwritten", func(t *testing.T) {
		sold := &models.Cart{ID: "c1", Status: models.CartStatusSold}
		svc := NewCartService(newFakeCartStore(sold), newFakeProductStore(), nil)

		_, err := svc.Save(context.Background(), models.SaveCartRequest{
			ID:    "c1",
			Items: []models.CartItem{{ProductID: "rose", Quantity: 1, Price: 10}},
		})
		if !errors.Is(err, models.ErrCartNotActive) {
			t.Fatalf("expected not active, got %v", err)
		}
	})
}

func TestSetCustomerInfo(t *testing.T) {
	t.Run("merges non-empty fields", func(t *testing.T) {
		cart := activeCart("c1", models.CartItem{ProductID: "rose", Quantity: 1, Price: 10})
		cart.CustomerName = "Rosa"
		cart.CustomerPhone = "111"
		store := newFakeCartStore(cart)
		svc := NewCartService(store, newFakeProductStore(), nil)

		got, err := svc.SetCustomerInfo(context.Background(), "c1", "", "999")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.CustomerName != "Rosa" || got.CustomerPhone != "999" {
			t.Fatalf("got %q/%q, want Rosa/999", got.CustomerName, got.CustomerPhone)
		}
		if store.saves != 1 {
			t.Fatalf("saves = %d, want 1 (TTL renewal)", store.saves)
		}
	})

	t.Run("missing cart", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), newFakeProductStore(), nil)

		if _, err := svc.SetCustomerInfo(context.Background(), "nope", "A", "1"); !errors.Is(err, models.ErrCartNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("sold cart rejects updates", func(t *testing.T) {
		sold := &models.Cart{ID: "c1", Status: models.CartStatusSold}
		svc := NewCartService(newFakeCartStore(sold), newFakeProductStore(), nil)

		if _, err := svc.SetCustomerInfo(context.Background(), "c1", "A", "1"); !errors.Is(err, models.ErrCartNotActive) {
			t.Fatalf("expected not active, got %v", err)
		}
	})
}

func TestMarkSold(t *testing.T) {
	t.Run("decrements stock and stamps the sale", func(t *testing.T) {
		cart := activeCart("c1", models.CartItem{ProductID: "rose", Quantity: 2, Price: 10})
		carts := newFakeCartStore(cart)
		products := newFakeProductStore(&models.Product{ID: "rose", Stock: 5})
		svc := NewCartService(carts, products, nil)

		sold, err := svc.MarkSold(context.Background(), "c1", "admin-x")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sold.Status != models.CartStatusSold {
			t.Fatalf("status = %s, want sold", sold.Status)
		}
		if sold.SoldBy != "admin-x" || sold.SoldAt == nil {
			t.Fatalf("sale audit fields missing: soldBy=%q soldAt=%v", sold.SoldBy, sold.SoldAt)
		}
		if got := products.products["rose"].Stock; got != 3 {
			t.Fatalf("stock = %d, want 3", got)
		}

		stored, err := carts.Get(context.Background(), "c1")
		if err != nil {
			t.Fatalf("sold cart must stay readable: %v", err)
		}
		if stored.Status != models.CartStatusSold {
			t.Fatalf("persisted status = %s, want sold", stored.Status)
		}
	})

	t.Run("decrement clamps at zero", func(t *testing.T) {
		cart := activeCart("c1", models.CartItem{ProductID: "rose", Quantity: 10, Price: 10})
		products := newFakeProductStore(&models.Product{ID: "rose", Stock: 4})
		svc := NewCartService(newFakeCartStore(cart), products, nil)

		if _, err := svc.MarkSold(context.Background(), "c1", "x"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := products.products["rose"].Stock; got != 0 {
			t.Fatalf("stock = %d, want clamp at 0", got)
		}
	})

	t.Run("variant bucket preferred over general stock", func(t *testing.T) {
		cart := activeCart("c1", models.CartItem{
			ProductID:    "rose",
			Quantity:     1,
			Price:        10,
			SelectedTags: []models.SelectedTag{{TagID: "small"}},
		})
		products := newFakeProductStore(&models.Product{
			ID: "rose", Stock: 10,
			TagStock: []models.TagStock{{TagID: "small", Stock: 2}},
		})
		svc := NewCartService(newFakeCartStore(cart), products, nil)

		if _, err := svc.MarkSold(context.Background(), "c1", "x"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := products.products["rose"]
		if p.TagStock[0].Stock != 1 {
			t.Fatalf("tag stock = %d, want 1", p.TagStock[0].Stock)
		}
		if p.Stock != 10 {
			t.Fatalf("general stock = %d, want untouched 10", p.Stock)
		}
	})

	t.Run("selling twice fails without double decrement", func(t *testing.T) {
		cart := activeCart("c1", models.CartItem{ProductID: "rose", Quantity: 2, Price: 10})
		products := newFakeProductStore(&models.Product{ID: "rose", Stock: 5})
		svc := NewCartService(newFakeCartStore(cart), products, nil)

		if _, err := svc.MarkSold(context.Background(), "c1", "x"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.MarkSold(context.Background(), "c1", "x"); !errors.Is(err, models.ErrCartNotActive) {
			t.Fatalf("expected not active, got %v", err)
		}
		if got := products.products["rose"].Stock; got != 3 {
			t.Fatalf("stock = %d after double sell, want 3", got)
		}
	})

	t.Run("missing cart", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), newFakeProductStore(), nil)

		if _, err := svc.MarkSold(context.Background(), "nope", "x"); !errors.Is(err, models.ErrCartNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("partial decrement failure is reported as such", func(t *testing.T) {
		cart := activeCart("c1",
			models.CartItem{ProductID: "rose", Quantity: 1, Price: 10},
			models.CartItem{ProductID: "fern", Quantity: 1, Price: 5},
		)
		products := newFakeProductStore(
			&models.Product{ID: "rose", Stock: 5},
			&models.Product{ID: "fern", Stock: 5},
		)
		products.failProducts["fern"] = errStoreDown
		carts := newFakeCartStore(cart)
		svc := NewCartService(carts, products, nil)

		_, err := svc.MarkSold(context.Background(), "c1", "x")
		var partial *models.PartialSaleError
		if !errors.As(err, &partial) {
			t.Fatalf("expected PartialSaleError, got %v", err)
		}
		if len(partial.FailedProducts) != 1 || partial.FailedProducts[0] != "fern" {
			t.Fatalf("failed products = %v, want [fern]", partial.FailedProducts)
		}

		stored, _ := carts.Get(context.Background(), "c1")
		if stored.Status != models.CartStatusActive {
			t.Fatalf("cart status = %s, must stay active for reconciliation", stored.Status)
		}
	})

	t.Run("total failure stays retryable", func(t *testing.T) {
		cart := activeCart("c1", models.CartItem{ProductID: "rose", Quantity: 1, Price: 10})
		products := newFakeProductStore(&models.Product{ID: "rose", Stock: 5})
		products.failProducts["rose"] = errStoreDown
		svc := NewCartService(newFakeCartStore(cart), products, nil)

		_, err := svc.MarkSold(context.Background(), "c1", "x")
		var partial *models.PartialSaleError
		if errors.As(err, &partial) {
			t.Fatalf("no decrement landed, must not report partial failure: %v", err)
		}
		if !errors.Is(err, errStoreDown) {
			t.Fatalf("expected the store error, got %v", err)
		}
	})

	t.Run("cart save failure after decrements is a partial failure", func(t *testing.T) {
		cart := activeCart("c1", models.CartItem{ProductID: "rose", Quantity: 1, Price: 10})
		carts := newFakeCartStore(cart)
		carts.saveErr = errStoreDown
		products := newFakeProductStore(&models.Product{ID: "rose", Stock: 5})
		svc := NewCartService(carts, products, nil)

		_, err := svc.MarkSold(context.Background(), "c1", "x")
		var partial *models.PartialSaleError
		if !errors.As(err, &partial) {
			t.Fatalf("expected PartialSaleError, got %v", err)
		}
	})
}
