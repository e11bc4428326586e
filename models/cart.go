package models

import "time"

const (
	CartStatusActive  = "active"
	CartStatusSold    = "sold"
	CartStatusExpired = "expired"
)

type SelectedTag struct {
	TagID    string `json:"tag_id"`
	TagName  string `json:"tag_name,omitempty"`
	TagColor string `json:"tag_color,omitempty"`
}

type CartItem struct {
	ProductID    string        `json:"product_id" binding:"required"`
	ProductName  string        `json:"product_name,omitempty"`
	SelectedTags []SelectedTag `json:"selected_tags,omitempty"`
	Quantity     int           `json:"quantity" binding:"required,min=1"`
	Price        float64       `json:"price" binding:"min=0"`
	TotalPrice   float64       `json:"total_price"`
}

type Cart struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	TotalItems    int        `json:"total_items"`
	TotalPrice    float64    `json:"total_price"`
	Status        string     `json:"status"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	SoldAt        *time.Time `json:"sold_at,omitempty"`
	SoldBy        string     `json:"sold_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	// ExpiresAt is derived from the store TTL on reads, never written.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ReservedStock is a derived view of one cart's claim on a product's stock.
// It is never stored on its own; it only exists while its cart is active.
type ReservedStock struct {
	ProductID    string        `json:"product_id"`
	SelectedTags []SelectedTag `json:"selected_tags,omitempty"`
	Quantity     int           `json:"quantity"`
	CartID       string        `json:"cart_id"`
	ExpiresAt    time.Time     `json:"expires_at"`
}

// Recalculate restores the derived totals after any item change.
func (c *Cart) Recalculate() {
	totalItems := 0
	totalPrice := 0.0
	for i := range c.Items {
		c.Items[i].TotalPrice = c.Items[i].Price * float64(c.Items[i].Quantity)
		totalItems += c.Items[i].Quantity
		totalPrice += c.Items[i].TotalPrice
	}
	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
}

func (c *Cart) IsActive() bool {
	return c.Status == CartStatusActive
}

// HasTag reports whether the item selects the given tag.
func (it *CartItem) HasTag(tagID string) bool {
	for _, t := range it.SelectedTags {
		if t.TagID == tagID {
			return true
		}
	}
	return false
}

// MatchesSelection reports whether the item competes for the same stock
// bucket as a request for productID with the given tag selection. An empty
// selection means the general bucket, which only untagged items draw from.
func (it *CartItem) MatchesSelection(productID string, tagIDs []string) bool {
	if it.ProductID != productID {
		return false
	}
	if len(tagIDs) == 0 {
		return len(it.SelectedTags) == 0
	}
	for _, id := range tagIDs {
		if it.HasTag(id) {
			return true
		}
	}
	return false
}
