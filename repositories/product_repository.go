package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"nursery-shop/config"
	"nursery-shop/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT id, name, description, price, stock, is_active, created_at, updated_at
	          FROM products WHERE id = $1`

	var p models.Product
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		log.Printf("product get failed: id=%s err=%v", id, err)
		return nil, models.ErrStoreUnavailable
	}

	rows, err := config.DB.Query(ctx,
		`SELECT tag_id, stock FROM product_tag_stock WHERE product_id = $1 ORDER BY tag_id`, id)
	if err != nil {
		log.Printf("tag stock get failed: id=%s err=%v", id, err)
		return nil, models.ErrStoreUnavailable
	}
	defer rows.Close()

	for rows.Next() {
		var ts models.TagStock
		if err := rows.Scan(&ts.TagID, &ts.Stock); err != nil {
			return nil, err
		}
		p.TagStock = append(p.TagStock, ts)
	}

	return &p, nil
}

func (r *ProductRepository) GetAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = true`).Scan(&total); err != nil {
		return nil, 0, models.ErrStoreUnavailable
	}

	query := `SELECT id, name, description, price, stock, is_active, created_at, updated_at
	          FROM products WHERE is_active = true ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := config.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, models.ErrStoreUnavailable
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	err := config.DB.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.IsActive, now, now,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return err
	}

	return r.replaceTagStock(ctx, product.ID, product.TagStock)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	_, err := config.DB.Exec(ctx, `
		UPDATE products SET name = $1, description = $2, price = $3, stock = $4,
		       is_active = $5, updated_at = $6 WHERE id = $7`,
		product.Name, product.Description, product.Price, product.Stock,
		product.IsActive, time.Now(), product.ID,
	)
	if err != nil {
		return err
	}

	return r.replaceTagStock(ctx, product.ID, product.TagStock)
}

func (r *ProductRepository) replaceTagStock(ctx context.Context, productID string, buckets []models.TagStock) error {
	if _, err := config.DB.Exec(ctx,
		`DELETE FROM product_tag_stock WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for _, ts := range buckets {
		if _, err := config.DB.Exec(ctx, `
			INSERT INTO product_tag_stock (product_id, tag_id, stock)
			VALUES ($1, $2, $3)`,
			productID, ts.TagID, ts.Stock); err != nil {
			return err
		}
	}
	return nil
}

// ReduceStock decrements the general bucket in one conditional statement so
// concurrent sales cannot interleave a read-modify-write. The floor at zero
// is part of the statement, never computed in application code.
func (r *ProductRepository) ReduceStock(ctx context.Context, id string, quantity int) (int, error) {
	var newStock int
	err := config.DB.QueryRow(ctx, `
		UPDATE products SET stock = GREATEST(stock - $1, 0), updated_at = $2
		WHERE id = $3
		RETURNING stock`,
		quantity, time.Now(), id,
	).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, models.ErrProductNotFound
	}
	if err != nil {
		log.Printf("stock reduce failed: product=%s qty=%d err=%v", id, quantity, err)
		return 0, models.ErrStoreUnavailable
	}
	return newStock, nil
}

// ReduceTagStock decrements a variant bucket, clamped at zero. The found
// result is false when the product has no bucket for the tag, in which case
// nothing was changed and the caller falls back to the general stock.
func (r *ProductRepository) ReduceTagStock(ctx context.Context, id, tagID string, quantity int) (int, bool, error) {
	var newStock int
	err := config.DB.QueryRow(ctx, `
		UPDATE product_tag_stock SET stock = GREATEST(stock - $1, 0)
		WHERE product_id = $2 AND tag_id = $3
		RETURNING stock`,
		quantity, id, tagID,
	).Scan(&newStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		log.Printf("tag stock reduce failed: product=%s tag=%s qty=%d err=%v", id, tagID, quantity, err)
		return 0, false, models.ErrStoreUnavailable
	}

	if _, err := config.DB.Exec(ctx,
		`UPDATE products SET updated_at = $1 WHERE id = $2`, time.Now(), id); err != nil {
		log.Printf("product touch failed: product=%s err=%v", id, err)
	}

	return newStock, true, nil
}
