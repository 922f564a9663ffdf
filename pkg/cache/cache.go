// Package cache provides the byte caches used to avoid re-running the layout
// engine for graph descriptions it has already rendered.
//
// Three backends implement [Cache]:
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry, for the CLI and the terminal panel
//   - [RedisCache]: shared cache for servers running several instances
//
// Keys are built by a [Keyer] so that hosts sharing a backend can scope them.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// TTLRender is how long a rendered document stays cached. Rendering is a pure
// function of the DOT text, so entries only expire to bound disk usage.
const TTLRender = 7 * 24 * time.Hour
