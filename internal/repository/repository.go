// Package repository maps domain records onto the ordered key-value
// store, one collection per entity. It emulates what a relational
// engine would provide natively: auto-incrementing identifiers via a
// reserved counter key, and secondary-key lookups via full-collection
// scans.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Repository errors. Expected absence is a typed result, not a
// storage failure.
var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// counterKey is the reserved key holding the next id of a collection.
// It starts with '!' so it sorts before every decimal id and can never
// collide with one; every scan must skip it.
const counterKey = "!seq"

// idKey renders an id as its storage key.
func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// checkContext returns early when the caller has already given up.
func checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}
