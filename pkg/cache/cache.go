// Package cache stores computed layout passes and rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries as JSON files, for the CLI
//   - [RedisCache] shares entries between server instances
//
// Keys are derived by a [Keyer] from content hashes so identical input
// always maps to the same entry:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.PassKey(cache.Hash(records), cache.PassKeyOpts{Width: 800, Height: 600})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLArtifact is the lifetime of a rendered artifact.
const TTLArtifact = 7 * 24 * time.Hour

// Keyer derives cache keys.
type Keyer interface {
	// PassKey identifies a layout pass over hashed records.
	PassKey(dataHash string, opts PassKeyOpts) string

	// ArtifactKey identifies one rendered format of a hashed pass.
	ArtifactKey(passHash string, opts ArtifactKeyOpts) string
}

// PassKeyOpts holds every input besides the records that changes a pass.
type PassKeyOpts struct {
	Width       float64  `json:"width"`
	Height      float64  `json:"height"`
	Inverted    bool     `json:"inverted"`
	OptionsHash string   `json:"options_hash"`
	Collapsed   []string `json:"collapsed,omitempty"`
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Labels     bool   `json:"labels,omitempty"`
	Background string `json:"background,omitempty"`
	Title      string `json:"title,omitempty"`
	FontSize   int    `json:"font_size,omitempty"`
	LabelColor string `json:"label_color,omitempty"`
	Detailed   bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key components into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PassKey implements Keyer.
func (k *DefaultKeyer) PassKey(dataHash string, opts PassKeyOpts) string {
	return hashKey("pass", dataHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(passHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", passHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
