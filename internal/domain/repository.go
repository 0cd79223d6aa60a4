package domain

import (
	"context"
	"time"
)

// KeyValueStore is the injected persistence abstraction. Values are
// JSON-serializable blobs keyed by string; each component rehydrates its
// state from the store at startup and rewrites the whole collection on every
// mutation. Last writer wins; there is no shared transaction boundary.
type KeyValueStore interface {
	// Get unmarshals the value at key into dest, or returns ErrKeyNotFound.
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Clock abstracts wall-clock time so period rollover, reminder windows and
// deal expiry can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// Catalog exposes the immutable product and payment-method reference data
type Catalog interface {
	All() []Product
	ByID(id string) (Product, bool)
	PaymentMethods() []PaymentMethod
}

// SeedProvider supplies demo data for first load. Kept behind an interface so
// core logic is tested without random seeding.
type SeedProvider interface {
	SpendingHistory(now time.Time) []SpendingRecord
	PriceAlerts() []PriceAlert
}
