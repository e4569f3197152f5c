package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/problem"
)

// MemoryStore keeps sets in a map. Sets are stored encoded so callers can
// never alias stored data.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]memoryEntry
}

type memoryEntry struct {
	summary Summary
	data    []byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Save(ctx context.Context, set *problem.Set) (err error) {
	start := time.Now()
	defer func() { observe(ctx, "memory", "save", start, err) }()
	if err := validateSet(set); err != nil {
		return err
	}
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode set: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[set.ID] = memoryEntry{summary: summarize(set), data: data}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*problem.Set, error) {
	start := time.Now()
	m.mu.RLock()
	e, ok := m.sets[id]
	m.mu.RUnlock()
	if !ok {
		err := notFound(id)
		observe(ctx, "memory", "get", start, err)
		return nil, err
	}

	var set problem.Set
	if err := json.Unmarshal(e.data, &set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode set %s", id)
	}
	observe(ctx, "memory", "get", start, nil)
	return &set, nil
}

func (m *MemoryStore) List(ctx context.Context, opts ListOptions) ([]Summary, error) {
	start := time.Now()
	m.mu.RLock()
	out := make([]Summary, 0, len(m.sets))
	for _, e := range m.sets {
		if opts.Kind != "" && e.summary.Kind != opts.Kind {
			continue
		}
		out = append(out, e.summary)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if n := opts.limit(); len(out) > n {
		out = out[:n]
	}
	observe(ctx, "memory", "list", start, nil)
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	m.mu.Lock()
	_, ok := m.sets[id]
	delete(m.sets, id)
	m.mu.Unlock()

	var err error
	if !ok {
		err = notFound(id)
	}
	observe(ctx, "memory", "delete", start, err)
	return err
}

// Close does nothing.
func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
