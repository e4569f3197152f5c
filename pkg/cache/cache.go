// Package cache stores rendered diagrams and generated problem sets.
//
// A [Cache] is a byte store with per-entry TTLs. Three backends exist:
//
//   - [FileCache]: one JSON file per entry, used by the CLI.
//   - [RedisCache]: shared cache for the HTTP server.
//   - [NullCache]: stores nothing, for tests and --no-cache.
//
// Keys are produced by a [Keyer] so that every backend and every caller
// agrees on the key layout. [ScopedKeyer] prefixes keys for isolation.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a key-value byte store with expiration.
//
// Get returns hit=false with a nil error for missing or expired entries.
// A zero ttl in Set stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	// TTLDiagram covers laid-out diagrams. Layouts are deterministic, so this
	// only bounds disk usage.
	TTLDiagram = 30 * 24 * time.Hour

	// TTLArtifact covers rendered SVG/PNG/PDF/JSON outputs.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLSet covers problem sets read through from the store.
	TTLSet = time.Hour
)

// ArtifactKeyOpts holds the render settings that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// WorksheetKeyOpts holds the settings that change a worksheet document.
type WorksheetKeyOpts struct {
	Format    string `json:"format"`
	AnswerKey bool   `json:"answer_key,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DiagramKey keys a laid-out diagram by the hash of its request.
	DiagramKey(requestHash string) string
	// ArtifactKey keys a rendered output by layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// SetKey keys a stored problem set by id.
	SetKey(id string) string
	// WorksheetKey keys a rendered worksheet for a set.
	WorksheetKey(setID string, opts WorksheetKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:payload".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DiagramKey returns "diagram:<hash>".
func (DefaultKeyer) DiagramKey(requestHash string) string {
	return "diagram:" + requestHash
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// SetKey returns "set:<id>".
func (DefaultKeyer) SetKey(id string) string {
	return fmt.Sprintf("set:%s", id)
}

// WorksheetKey hashes the set id together with the worksheet options.
func (DefaultKeyer) WorksheetKey(setID string, opts WorksheetKeyOpts) string {
	return hashKey("worksheet", setID, opts)
}

var _ Keyer = DefaultKeyer{}
