package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
	"github.com/msto63/ghll/foundation/ghll"
)

// Entry is one journaled line together with how it parsed
type Entry struct {
	ID          string    `json:"id"`
	Line        string    `json:"line"`
	Expression  string    `json:"expression"`
	Tree        []string  `json:"tree"`
	Diagnostics []string  `json:"diagnostics"`
	Complete    bool      `json:"complete"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a SQLite-backed journal of processed lines. The journal is
// write-only from the parser's point of view: nothing in it is ever fed
// back into parsing.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Config holds store configuration
type Config struct {
	Path string
}

// DefaultConfig returns default store configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

// Open opens or creates the journal database
func Open(cfg Config) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, mdwerror.Wrap(err, "failed to create history directory").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.open").
			WithDetail("path", cfg.Path)
	}

	// Open database with WAL mode for better concurrent access
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open history database").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.open").
			WithDetail("path", cfg.Path)
	}

	store := &Store{db: db, now: time.Now}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, mdwerror.Wrap(err, "failed to initialize history schema").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.open").
			WithDetail("path", cfg.Path)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		line TEXT NOT NULL,
		expression TEXT NOT NULL,
		tree TEXT NOT NULL,
		diagnostics TEXT NOT NULL,
		complete INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record journals a processed line and returns the stored entry
func (s *Store) Record(ctx context.Context, result *ghll.Result) (*Entry, error) {
	if result == nil {
		return nil, mdwerror.New("result is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("history.record")
	}

	view := result.View()
	entry := &Entry{
		ID:          uuid.New().String(),
		Line:        view.Line,
		Expression:  view.Expression,
		Tree:        view.Tree,
		Diagnostics: view.Diagnostics,
		Complete:    view.Complete,
		CreatedAt:   s.now().UTC(),
	}

	tree, err := json.Marshal(entry.Tree)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode tree").
			WithCode(mdwerror.CodeInternal).
			WithOperation("history.record")
	}
	diagnostics, err := json.Marshal(entry.Diagnostics)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to encode diagnostics").
			WithCode(mdwerror.CodeInternal).
			WithOperation("history.record")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (id, line, expression, tree, diagnostics, complete, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Line, entry.Expression, string(tree), string(diagnostics), entry.Complete, entry.CreatedAt.UnixNano())
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to record entry").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.record")
	}

	return entry, nil
}

// List returns the most recent entries, newest first. A limit of zero or
// less returns all entries.
func (s *Store) List(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, line, expression, tree, diagnostics, complete, created_at
		FROM entries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to list entries").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.list")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "failed to read entries").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.list")
	}
	return entries, nil
}

// Get returns the entry with the given ID
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, line, expression, tree, diagnostics, complete, created_at
		FROM entries WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mdwerror.Newf("history entry %s not found", id).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("history.get").
			WithDetail("id", id)
	}
	return entry, err
}

// Count returns the number of journaled entries
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		return 0, mdwerror.Wrap(err, "failed to count entries").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.count")
	}
	return count, nil
}

// Clear removes all entries and returns how many were removed
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, mdwerror.Wrap(err, "failed to clear history").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.clear")
	}
	return res.RowsAffected()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		entry       Entry
		tree        string
		diagnostics string
		createdAt   int64
	)
	if err := row.Scan(&entry.ID, &entry.Line, &entry.Expression, &tree, &diagnostics, &entry.Complete, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, mdwerror.Wrap(err, "failed to scan entry").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.scan")
	}
	if err := json.Unmarshal([]byte(tree), &entry.Tree); err != nil {
		return nil, mdwerror.Wrap(err, "failed to decode tree").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.scan").
			WithDetail("id", entry.ID)
	}
	if err := json.Unmarshal([]byte(diagnostics), &entry.Diagnostics); err != nil {
		return nil, mdwerror.Wrap(err, "failed to decode diagnostics").
			WithCode(mdwerror.CodeDatabaseError).
			WithOperation("history.scan").
			WithDetail("id", entry.ID)
	}
	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	return &entry, nil
}
