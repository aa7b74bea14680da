package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
	"github.com/msto63/ghll/foundation/ghll"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func process(t *testing.T, line string) *ghll.Result {
	t.Helper()
	engine, err := ghll.New(ghll.Options{})
	if err != nil {
		t.Fatalf("ghll.New() error = %v", err)
	}
	result, err := engine.Process(context.Background(), line)
	if err != nil {
		t.Fatalf("Process(%q) error = %v", line, err)
	}
	return result
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Path != "./data/history.db" {
		t.Errorf("Path = %v, want ./data/history.db", cfg.Path)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(Config{Path: dbPath})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	entry, err := store.Record(ctx, process(t, "1 + 2"))
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if entry.ID == "" {
		t.Fatal("Record() returned empty ID")
	}

	got, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Line != "1 + 2" {
		t.Errorf("Line = %q, want %q", got.Line, "1 + 2")
	}
	if got.Expression != "(1 + 2)" {
		t.Errorf("Expression = %q, want %q", got.Expression, "(1 + 2)")
	}
	if !got.Complete {
		t.Error("Complete = false, want true")
	}
	if len(got.Tree) != len(entry.Tree) || got.Tree[0] != "└── BinaryExpression" {
		t.Errorf("Tree = %q, want %q", got.Tree, entry.Tree)
	}
	if len(got.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %q, want none", got.Diagnostics)
	}
	if !got.CreatedAt.Equal(entry.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, entry.CreatedAt)
	}
}

func TestStore_RecordDiagnostics(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	entry, err := store.Record(ctx, process(t, "1 +"))
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Complete {
		t.Error("Complete = true, want false")
	}
	if len(got.Diagnostics) == 0 {
		t.Error("Diagnostics is empty, want a missing-token diagnostic")
	}
}

func TestStore_RecordNil(t *testing.T) {
	store := createTestStore(t)

	_, err := store.Record(context.Background(), nil)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Record(nil) error = %v, want INVALID_INPUT", err)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := createTestStore(t)

	_, err := store.Get(context.Background(), "nonexistent")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	lines := []string{"1", "2", "3"}
	for i, line := range lines {
		at := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return at }
		if _, err := store.Record(ctx, process(t, line)); err != nil {
			t.Fatalf("Record(%q) error = %v", line, err)
		}
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"3", "2", "1"}},
		{"negative means all", -5, []string{"3", "2", "1"}},
		{"limited", 2, []string{"3", "2"}},
		{"limit above count", 10, []string{"3", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.List(ctx, tt.limit)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(entries) != len(tt.want) {
				t.Fatalf("List() returned %d entries, want %d", len(entries), len(tt.want))
			}
			for i, e := range entries {
				if e.Line != tt.want[i] {
					t.Errorf("entries[%d].Line = %q, want %q", i, e.Line, tt.want[i])
				}
			}
		})
	}
}

func TestStore_CountAndClear(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for _, line := range []string{"1", "1 + 1", "x"} {
		if _, err := store.Record(ctx, process(t, line)); err != nil {
			t.Fatalf("Record(%q) error = %v", line, err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear() = %d, want 3", removed)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() after Clear returned %d entries, want 0", len(entries))
	}
}

func TestStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(Config{Path: dbPath})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	entry, err := store.Record(ctx, process(t, "4 - 2"))
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	store.Close()

	reopened, err := Open(Config{Path: dbPath})
	if err != nil {
		t.Fatalf("Open() after close error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Expression != "(4 - 2)" {
		t.Errorf("Expression = %q, want %q", got.Expression, "(4 - 2)")
	}
}
