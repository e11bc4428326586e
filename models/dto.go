package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Name     string `json:"name" form:"name" binding:"required,min=3"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=customer editor admin"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type SaveCartRequest struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items" binding:"required,min=1,dive"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
}

type CustomerInfoRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type StockCheckRequest struct {
	Quantity     int      `json:"quantity" binding:"required,min=1"`
	SelectedTags []string `json:"selected_tags"`
}

type StockCheckResponse struct {
	Stock     int `json:"stock"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

type ReduceStockRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1"`
	TagID    string `json:"tag_id"`
}

type CreateProductRequest struct {
	ID          string     `json:"id"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Price       float64    `json:"price" binding:"required,min=0"`
	Stock       int        `json:"stock" binding:"min=0"`
	TagStock    []TagStock `json:"tag_stock" binding:"dive"`
	IsActive    bool       `json:"is_active"`
}

type UpdateProductRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Stock       *int       `json:"stock"`
	TagStock    []TagStock `json:"tag_stock" binding:"dive"`
	IsActive    *bool      `json:"is_active"`
}
