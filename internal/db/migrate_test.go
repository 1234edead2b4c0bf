package db_test

import (
	"path/filepath"
	"testing"

	"github.com/joestump/joe-blog/internal/db"
	"github.com/joestump/joe-blog/internal/db/migrations"
	"github.com/joestump/joe-blog/internal/testutil"
)

func TestMigrate_CreatesTables(t *testing.T) {
	conn := testutil.NewTestDB(t)

	if got := migrations.Dialect(); got != "sqlite3" {
		t.Errorf("migrations dialect = %q, want sqlite3", got)
	}

	for _, table := range []string{"sessions", "generations", "api_tokens"} {
		var name string
		err := conn.Get(&name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		if err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}

	v, err := db.Status(conn, "sqlite3")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if v != 3 {
		t.Errorf("schema version = %d, want 3", v)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := testutil.NewTestDB(t)
	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestNew_SQLiteFile(t *testing.T) {
	conn, err := db.New("sqlite3", filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	if _, err := db.New("oracle", "x"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if err := db.Migrate(nil, "oracle"); err == nil {
		t.Fatal("expected error for unknown goose dialect")
	}
}
