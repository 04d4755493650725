// Package fallback keeps named record collections in a durable key-value
// slot so the gateway can serve requests while the backend is unreachable.
//
// A collection is read and written whole. There is no locking: two callers
// that read-modify-write the same collection concurrently can lose one of the
// updates (last write wins).
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names used by the gateway.
const (
	Inquiries  = "inquiries"
	Admissions = "admissions"
)

const keyPrefix = "edunest_"

// Slots is a durable string key-value store.
type Slots interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// Key returns the slot key holding collection.
func Key(collection string) string {
	return keyPrefix + collection
}

// Read returns the records of collection in stored order. A missing, empty or
// undecodable slot reads as an empty collection; only slot I/O errors are returned.
func Read[T any](ctx context.Context, slots Slots, collection string) ([]T, error) {
	raw, ok, err := slots.Get(ctx, Key(collection))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	records := []T{}
	if !ok || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return []T{}, nil
	}
	return records, nil
}

// Write replaces collection with records.
func Write[T any](ctx context.Context, slots Slots, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := slots.Set(ctx, Key(collection), string(data)); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}
