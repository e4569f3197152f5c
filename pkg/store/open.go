package store

import (
	"context"
	"strings"

	"github.com/matzehuels/mathproblem/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend    string `toml:"backend"`
	Path       string `toml:"path"`       // sqlite
	URI        string `toml:"uri"`        // mongo
	Database   string `toml:"database"`   // mongo
	Collection string `toml:"collection"` // mongo
}

// Open returns the backend named by cfg.Backend. An empty backend selects
// the memory store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "sqlite store requires a path")
		}
		s, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		if cfg.URI == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "mongo store requires a uri")
		}
		s, err := OpenMongo(ctx, cfg.URI, cfg.Database, cfg.Collection)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q (must be one of: memory, sqlite, mongo)", cfg.Backend)
}
