// Package storage provides ordered key-value persistence, partitioned
// into named collections. Implementations must be safe for concurrent
// use and must iterate keys in byte order.
package storage

import "errors"

// Storage errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("store is closed")
)

// Collection names used by the application.
const (
	CollectionUsers     = "users"
	CollectionProducts  = "products"
	CollectionCustomers = "customers"
	CollectionOrders    = "orders"
)

// IterFunc is called once per entry during iteration. Returning a
// non-nil error stops the iteration and propagates the error.
type IterFunc func(key string, value []byte) error

// Store defines the key-value storage contract consumed by the
// repositories. Keys are scoped to a collection; iteration visits a
// single collection in key-byte order.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Get(collection, key string) ([]byte, error)

	// Put stores a value under the given key.
	// Overwrites any existing value for the key.
	Put(collection, key string, value []byte) error

	// Delete removes a key-value pair.
	// Returns ErrKeyNotFound if the key doesn't exist.
	Delete(collection, key string) error

	// Iterate visits every entry of the collection in key-byte order.
	Iterate(collection string, fn IterFunc) error

	// Close releases the underlying resources.
	Close() error
}
