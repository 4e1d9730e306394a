// Package cache provides the memoization layer for the layout pipeline.
//
// Every pipeline stage recomputes deterministically from its inputs, so
// results can be keyed on exactly those inputs and reused: items on the
// source and property names, layouts on the range/window/geometry, and
// rendered artifacts on the layout plus format options. The Keyer builds
// those keys; the Cache stores the bytes.
//
// Backends:
//   - MemoryCache: in-process cache for single-run pipelines and tests
//   - FileCache: persistent cache for CLI usage (~/.cache/timegrid)
//   - RedisCache: shared cache for server mode
//   - NullCache: caching disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Default TTLs per key type. Items expire quickly because sources change
// under us; layouts and artifacts are pure functions of their keys and
// only expire to bound disk usage.
const (
	TTLItems    = 15 * time.Minute
	TTLHTTP     = 15 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the byte-oriented storage interface shared by all backends.
type Cache interface {
	// Get returns the cached data for key, a hit flag, and any backend
	// error. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer - Cache Key Construction
// =============================================================================

// ItemsKeyOpts are the options that distinguish item-loading results.
type ItemsKeyOpts struct {
	StartProperty string `json:"start_property"`
	EndProperty   string `json:"end_property"`
}

// LayoutKeyOpts are the layout-affecting options: the date range, the
// hour window, the item property names, and every geometry measurement.
// The property names matter because the layout reads item times through
// them; the same records laid out under different names are different
// layouts.
type LayoutKeyOpts struct {
	From          string `json:"from"`
	Till          string `json:"till"`
	FromHour      int    `json:"from_hour"`
	ToHour        int    `json:"to_hour"`
	StartProperty string `json:"start_property"`
	EndProperty   string `json:"end_property"`

	Width                   float64 `json:"width"`
	TimeWidth               float64 `json:"time_width"`
	HourHeight              float64 `json:"hour_height"`
	ColumnWidth             float64 `json:"column_width"`
	ColumnHeaderHeight      float64 `json:"column_header_height"`
	LinesTopOffset          float64 `json:"lines_top_offset"`
	LinesLeftInset          float64 `json:"lines_left_inset"`
	ColumnHorizontalPadding float64 `json:"column_horizontal_padding"`
}

// ArtifactKeyOpts are the render-affecting options.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style"`
}

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// HTTPKey generates a key for a cached source fetch.
	HTTPKey(namespace, key string) string

	// ItemsKey generates a key for loaded item records.
	ItemsKey(source string, opts ItemsKeyOpts) string

	// LayoutKey generates a key for a computed layout, scoped to the
	// hash of the loaded items.
	LayoutKey(itemsHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, scoped to
	// the hash of the layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey generates a key for a cached source fetch.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ItemsKey generates a key for loaded item records.
func (k *DefaultKeyer) ItemsKey(source string, opts ItemsKeyOpts) string {
	return hashKey("items", source, opts)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(itemsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", itemsHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
