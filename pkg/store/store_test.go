package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/problem"
)

func newSet(t *testing.T, kind problem.Kind, level int, created time.Time) *problem.Set {
	t.Helper()
	g := problem.NewGenerator(uint64(created.Unix()))
	set := &problem.Set{
		ID:        uuid.NewString(),
		Kind:      kind,
		Level:     level,
		Seed:      uint64(created.Unix()),
		CreatedAt: created,
	}
	for range 2 {
		p, err := g.Generate(kind, level, problem.Params{})
		if err != nil {
			t.Fatal(err)
		}
		p.ID = uuid.NewString()
		set.Problems = append(set.Problems, p)
	}
	return set
}

// testStore runs the behavior every backend must share.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := newSet(t, problem.KindAddition, 1, base)
	newer := newSet(t, problem.KindRightAngle, 2, base.Add(time.Hour))
	for _, set := range []*problem.Set{older, newer} {
		if err := s.Save(ctx, set); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := s.Get(ctx, newer.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != newer.ID || got.Kind != newer.Kind || len(got.Problems) != 2 {
		t.Errorf("Get returned %+v", got)
	}
	if got.Problems[0].Figure == nil || got.Problems[0].Figure.Labels.AB == nil && got.Problems[0].Figure.Labels.AC == nil {
		t.Error("figure lost in storage")
	}
	if !got.CreatedAt.Equal(newer.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, newer.CreatedAt)
	}

	list, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("List order = %+v", list)
	}
	if list[0].Count != 2 || list[0].Level != 2 {
		t.Errorf("summary = %+v", list[0])
	}

	list, _ = s.List(ctx, ListOptions{Kind: problem.KindAddition})
	if len(list) != 1 || list[0].ID != older.ID {
		t.Errorf("List(kind=addition) = %+v", list)
	}
	list, _ = s.List(ctx, ListOptions{Limit: 1})
	if len(list) != 1 {
		t.Errorf("List(limit=1) returned %d", len(list))
	}

	older.Level = 2
	if err := s.Save(ctx, older); err != nil {
		t.Fatalf("re-Save: %v", err)
	}
	if got, _ := s.Get(ctx, older.ID); got.Level != 2 {
		t.Error("Save did not replace existing set")
	}

	if err := s.Delete(ctx, older.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, older.ID); !errors.Is(err, errors.ErrCodeSetNotFound) {
		t.Errorf("Get after Delete error = %v", err)
	}
	if err := s.Delete(ctx, older.ID); !errors.Is(err, errors.ErrCodeSetNotFound) {
		t.Errorf("second Delete error = %v", err)
	}

	if err := s.Save(ctx, &problem.Set{ID: "not-a-uuid"}); !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("Save with bad id error = %v", err)
	}
	if err := s.Save(ctx, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save(nil) error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStore_NoAliasing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	set := newSet(t, problem.KindAddition, 1, time.Now())
	if err := s.Save(ctx, set); err != nil {
		t.Fatal(err)
	}
	set.Problems[0].Prompt = "changed"

	got, _ := s.Get(ctx, set.ID)
	if got.Problems[0].Prompt == "changed" {
		t.Error("stored set aliases caller data")
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestSQLiteStore_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "sets.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	set := newSet(t, problem.KindGraphTransform, 3, time.Now())
	if err := s.Save(ctx, set); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.Get(ctx, set.ID)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Problems[1].Answer != set.Problems[1].Answer {
		t.Error("answers differ after reopen")
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MATHPROBLEM_TEST_MONGO")
	if uri == "" {
		t.Skip("MATHPROBLEM_TEST_MONGO not set")
	}
	ctx := context.Background()
	s, err := OpenMongo(ctx, uri, "mathproblem_test", "sets_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		s.Close()
	}()
	testStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(empty) = %T, want *MemoryStore", s)
	}

	s, err = Open(ctx, Config{Backend: "SQLite", Path: filepath.Join(t.TempDir(), "x.db")})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("Open(sqlite) = %T", s)
	}
	s.Close()

	tests := []struct {
		cfg  Config
		code errors.Code
	}{
		{Config{Backend: "sqlite"}, errors.ErrCodeInvalidInput},
		{Config{Backend: "mongo"}, errors.ErrCodeInvalidInput},
		{Config{Backend: "postgres"}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		if _, err := Open(ctx, tt.cfg); !errors.Is(err, tt.code) {
			t.Errorf("Open(%+v) error = %v, want %s", tt.cfg, err, tt.code)
		}
	}
}
