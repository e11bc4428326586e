package services

import (
	"context"
	"errors"

	"nursery-shop/models"
)

// fakeCartStore keeps carts in a map; a nil entry simulates a TTL-expired
// cart that still has a key client-side but is gone from the store.
type fakeCartStore struct {
	carts   map[string]*models.Cart
	saveErr error
	listErr error
	saves   int
}

func newFakeCartStore(carts ...*models.Cart) *fakeCartStore {
	m := map[string]*models.Cart{}
	for _, c := range carts {
		cp := *c
		m[c.ID] = &cp
	}
	return &fakeCartStore{carts: m}
}

func (f *fakeCartStore) Save(ctx context.Context, cart *models.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	cp := *cart
	f.carts[cart.ID] = &cp
	return nil
}

func (f *fakeCartStore) Get(ctx context.Context, id string) (*models.Cart, error) {
	c, ok := f.carts[id]
	if !ok || c == nil {
		return nil, models.ErrCartNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCartStore) ListActive(ctx context.Context) ([]models.Cart, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Cart{}
	for _, c := range f.carts {
		if c != nil && c.IsActive() {
			out = append(out, *c)
		}
	}
	return out, nil
}

// fakeProductStore applies the same clamped-decrement rules as the SQL store.
type fakeProductStore struct {
	products map[string]*models.Product
	// failProducts makes decrements against these ids fail.
	failProducts map[string]error
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	m := map[string]*models.Product{}
	for _, p := range products {
		cp := *p
		m[p.ID] = &cp
	}
	return &fakeProductStore{products: m, failProducts: map[string]error{}}
}

func (f *fakeProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) ReduceStock(ctx context.Context, id string, quantity int) (int, error) {
	if err := f.failProducts[id]; err != nil {
		return 0, err
	}
	p, ok := f.products[id]
	if !ok {
		return 0, models.ErrProductNotFound
	}
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
	return p.Stock, nil
}

func (f *fakeProductStore) ReduceTagStock(ctx context.Context, id, tagID string, quantity int) (int, bool, error) {
	if err := f.failProducts[id]; err != nil {
		return 0, false, err
	}
	p, ok := f.products[id]
	if !ok {
		return 0, false, nil
	}
	for i := range p.TagStock {
		if p.TagStock[i].TagID == tagID {
			p.TagStock[i].Stock -= quantity
			if p.TagStock[i].Stock < 0 {
				p.TagStock[i].Stock = 0
			}
			return p.TagStock[i].Stock, true, nil
		}
	}
	return 0, false, nil
}

var errStoreDown = errors.New("store down")
