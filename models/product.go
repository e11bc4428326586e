package models

import "time"

type TagStock struct {
	TagID string `json:"tag_id" binding:"required"`
	Stock int    `json:"stock" binding:"min=0"`
}

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	TagStock    []TagStock `json:"tag_stock,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StockFor returns the authoritative bucket for a tag selection: the first
// matching per-tag bucket when one exists, otherwise the general stock.
func (p *Product) StockFor(tagIDs []string) (stock int, tagID string, hasBucket bool) {
	for _, id := range tagIDs {
		for _, ts := range p.TagStock {
			if ts.TagID == id {
				return ts.Stock, ts.TagID, true
			}
		}
	}
	return p.Stock, "", false
}
