// Package store persists generated problem sets.
//
// Three backends implement [Store]:
//
//   - [MemoryStore]: process-local, for tests and the default server.
//   - [SQLiteStore]: a single-file database via the pure-Go modernc driver.
//   - [MongoStore]: a shared MongoDB collection.
//
// Sets are stored whole as JSON documents next to the few columns needed
// for listing. A missing set yields an error with code
// errors.ErrCodeSetNotFound.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/observability"
	"github.com/matzehuels/mathproblem/pkg/problem"
)

// Store saves and retrieves problem sets. Implementations are safe for
// concurrent use.
type Store interface {
	// Save inserts or replaces set, keyed by set.ID.
	Save(ctx context.Context, set *problem.Set) error
	Get(ctx context.Context, id string) (*problem.Set, error)
	// List returns summaries, newest first.
	List(ctx context.Context, opts ListOptions) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Summary describes a stored set without its problems.
type Summary struct {
	ID        string       `json:"id"`
	Kind      problem.Kind `json:"kind"`
	Level     int          `json:"level"`
	Count     int          `json:"count"`
	CreatedAt time.Time    `json:"created_at"`
}

// ListOptions filters List. A zero Limit means DefaultListLimit.
type ListOptions struct {
	Kind  problem.Kind
	Limit int
}

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

func summarize(s *problem.Set) Summary {
	return Summary{
		ID:        s.ID,
		Kind:      s.Kind,
		Level:     s.Level,
		Count:     len(s.Problems),
		CreatedAt: s.CreatedAt,
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSetNotFound, "problem set %s not found", id)
}

func validateSet(s *problem.Set) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "problem set is nil")
	}
	return errors.ValidateSetID(s.ID)
}

// observe reports one operation to the store hooks.
func observe(ctx context.Context, backend, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, backend, op, time.Since(start), err)
}
