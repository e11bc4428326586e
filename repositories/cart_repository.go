package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"nursery-shop/config"
	"nursery-shop/models"
)

const cartKeyPrefix = "cart:"

// CartRepository keeps carts in Redis as JSON blobs with a TTL. Every save
// rewrites the blob and resets the expiry window; a cart nobody touches
// simply vanishes when the TTL elapses.
type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func cartKey(id string) string {
	return cartKeyPrefix + id
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", cart.ID, err)
	}

	ttl := config.AppConfig.CartTTL
	if err := models.RedisClient.Set(ctx, cartKey(cart.ID), data, ttl).Err(); err != nil {
		log.Printf("cart save failed: id=%s err=%v", cart.ID, err)
		return fmt.Errorf("%w: save cart %s: %v", models.ErrStoreUnavailable, cart.ID, err)
	}
	return nil
}

func (r *CartRepository) Get(ctx context.Context, id string) (*models.Cart, error) {
	data, err := models.RedisClient.Get(ctx, cartKey(id)).Result()
	if err == redis.Nil {
		return nil, models.ErrCartNotFound
	}
	if err != nil {
		log.Printf("cart get failed: id=%s err=%v", id, err)
		return nil, fmt.Errorf("%w: get cart %s: %v", models.ErrStoreUnavailable, id, err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}

	if ttl, err := models.RedisClient.TTL(ctx, cartKey(id)).Result(); err == nil && ttl > 0 {
		cart.ExpiresAt = time.Now().Add(ttl)
	}

	return &cart, nil
}

// ListActive scans the cart keyspace and returns every cart still in active
// status. The working set is bounded by the TTL, so a full scan stays cheap.
func (r *CartRepository) ListActive(ctx context.Context) ([]models.Cart, error) {
	carts := []models.Cart{}

	iter := models.RedisClient.Scan(ctx, 0, cartKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		data, err := models.RedisClient.Get(ctx, key).Result()
		if err == redis.Nil {
			// Expired between SCAN and GET.
			continue
		}
		if err != nil {
			log.Printf("cart list failed: key=%s err=%v", key, err)
			return nil, fmt.Errorf("%w: list carts: %v", models.ErrStoreUnavailable, err)
		}

		var cart models.Cart
		if err := json.Unmarshal([]byte(data), &cart); err != nil {
			log.Printf("skipping undecodable cart: key=%s err=%v", key, err)
			continue
		}
		if !cart.IsActive() {
			continue
		}

		if ttl, err := models.RedisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
			cart.ExpiresAt = time.Now().Add(ttl)
		}

		carts = append(carts, cart)
	}
	if err := iter.Err(); err != nil {
		log.Printf("cart scan failed: err=%v", err)
		return nil, fmt.Errorf("%w: scan carts: %v", models.ErrStoreUnavailable, err)
	}

	return carts, nil
}
