package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/problem"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS problem_sets (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		level      INTEGER NOT NULL,
		count      INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		payload    BLOB NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS problem_sets_created ON problem_sets(created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS problem_sets_kind ON problem_sets(kind, created_at DESC);`,
}

// sqliteTime is fixed width so created_at sorts lexically.
const sqliteTime = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps sets in a SQLite file in WAL mode.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path. ":memory:" opens a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes
	// writers on the file.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if path != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	for _, q := range sqliteSchema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, set *problem.Set) (err error) {
	start := time.Now()
	defer func() { observe(ctx, "sqlite", "save", start, err) }()

	if err := validateSet(set); err != nil {
		return err
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode set: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO problem_sets (id, kind, level, count, created_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			kind=excluded.kind, level=excluded.level, count=excluded.count,
			created_at=excluded.created_at, payload=excluded.payload`,
		set.ID, string(set.Kind), set.Level, len(set.Problems),
		set.CreatedAt.UTC().Format(sqliteTime), payload)
	if err != nil {
		return fmt.Errorf("insert set: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (_ *problem.Set, err error) {
	start := time.Now()
	defer func() { observe(ctx, "sqlite", "get", start, err) }()

	var payload []byte
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM problem_sets WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("query set: %w", err)
	}

	var set problem.Set
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode set %s", id)
	}
	return &set, nil
}

func (s *SQLiteStore) List(ctx context.Context, opts ListOptions) (_ []Summary, err error) {
	start := time.Now()
	defer func() { observe(ctx, "sqlite", "list", start, err) }()

	q := `SELECT id, kind, level, count, created_at FROM problem_sets`
	args := []any{}
	if opts.Kind != "" {
		q += ` WHERE kind = ?`
		args = append(args, string(opts.Kind))
	}
	q += ` ORDER BY created_at DESC, id ASC LIMIT ?`
	args = append(args, opts.limit())

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			kind    string
			created string
		)
		if err := rows.Scan(&sum.ID, &kind, &sum.Level, &sum.Count, &created); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		sum.Kind = problem.Kind(kind)
		if sum.CreatedAt, err = time.Parse(sqliteTime, created); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe(ctx, "sqlite", "delete", start, err) }()

	res, err := s.db.ExecContext(ctx, `DELETE FROM problem_sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
