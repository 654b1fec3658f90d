// Package cache stores imported networks between runs.
//
// Importing a large CSV network dominates the running time of a draw, while
// the tables rarely change. The pipeline therefore keeps a JSON snapshot of
// each imported graph, keyed by a digest of both tables and the import
// options. A changed table or option yields a new key, so entries never need
// invalidation; they only expire.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long snapshots stay valid.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
