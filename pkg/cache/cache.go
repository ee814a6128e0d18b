// Package cache provides content-addressed caching for enumeration
// results.
//
// Enumerating a large instance can be expensive; the CLI and the HTTP
// API key finished runs by a fingerprint of the input graph plus the
// run options (see ResultKey), so repeated invocations on the same
// input are served from cache. Several backends implement the same
// small interface: file (CLI default, grouped by graph fingerprint),
// null (caching disabled), Redis and MongoDB (multi-instance
// deployments).
package cache

import (
	"context"
	"time"
)

// Cache is the backend-neutral cache interface.
// Implementations must treat keys as opaque strings; only the file
// backend additionally exploits the ResultKey layout for its on-disk
// grouping.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live.
	// A non-positive ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
