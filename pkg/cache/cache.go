// Package cache stores derived data about background images between runs.
//
// Probing a background (decoding its header, reading DPI chunks, parsing an
// SVG root element) and base64-encoding it for export are both pure
// functions of the file contents. The CLI keeps their results in a
// [FileCache] under the user cache directory; tests and one-off runs use
// [NullCache].
//
// Keys come from a [Keyer] and include the file's path, size and
// modification time, so editing or replacing an image invalidates its
// entries without explicit bookkeeping.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired or
	// unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLs for the entry kinds the editor writes.
const (
	InfoTTL    = 30 * 24 * time.Hour
	DataURITTL = 7 * 24 * time.Hour
)
