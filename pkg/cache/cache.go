// Package cache stores rendered diagrams and encoded artifacts.
//
// Backends implement [Cache]: [FileCache] for local CLI use, [RedisCache] for
// sharing results between server instances, and [NullCache] when caching is
// disabled. Keys are produced by a [Keyer] so that every entry point derives
// identical keys for identical inputs.
//
// Only diagrams whose colors are pinned by a seed are cacheable: without a
// seed each render draws fresh colors and a cached result would be wrong.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Entry lifetimes per pipeline stage.
const (
	TTLDiagram  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
