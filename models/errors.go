package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotActive   = errors.New("cart is not active")
	// ErrInvalidQuantity rejects a non-positive item quantity before it can
	// reach the ledger or a stock decrement.
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	// ErrStoreUnavailable marks a retryable backend failure. Callers must not
	// report it as not-found.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InsufficientStockError rejects a quantity that exceeds what the product can
// supply. Reserved distinguishes "the shelf is short" from "other carts got
// there first" so the shopper message can say which.
type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
	Reserved    int
}

func (e *InsufficientStockError) Error() string {
	if e.Reserved > 0 {
		return fmt.Sprintf("Insufficient stock for %s: %d unit(s) reserved by other carts, %d available",
			e.ProductName, e.Reserved, e.Available)
	}
	return fmt.Sprintf("Insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// PartialSaleError reports a markSold run that applied some stock decrements
// but could not finish. Retrying would double-decrement; this needs an
// operator, not a retry.
type PartialSaleError struct {
	CartID         string
	FailedProducts []string
	Err            error
}

func (e *PartialSaleError) Error() string {
	return fmt.Sprintf("sale of cart %s partially applied (failed products: %s): %v",
		e.CartID, strings.Join(e.FailedProducts, ", "), e.Err)
}

func (e *PartialSaleError) Unwrap() error {
	return e.Err
}
