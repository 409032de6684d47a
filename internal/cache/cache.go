// Package cache holds short-lived copies of serialized listings.
// Values are opaque bytes so the in-process and Redis backends are interchangeable.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL key/value store
type Cache interface {
	// Get returns the value and true on a hit
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
