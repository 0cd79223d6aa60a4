package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrKeyNotFound is returned when a store key has never been written
	ErrKeyNotFound = errors.New("key not found in store")

	// ErrCartLineNotFound is returned when a cart operation targets a missing line
	ErrCartLineNotFound = errors.New("cart line not found")

	// ErrEmptyCart is returned when checkout is attempted with no items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStoreUnavailable is returned when the persisted store cannot be reached
	ErrStoreUnavailable = errors.New("persisted store unavailable")
)
