package models

import "time"

const (
	RoleCustomer = "customer"
	RoleEditor   = "editor"
	RoleAdmin    = "admin"
)

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanManageCarts reports whether the role may list and sell carts.
func CanManageCarts(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
