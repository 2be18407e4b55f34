// Package dbtest creates real SQLite database files for tests through
// the pure-Go driver, so format-level code is exercised against files
// SQLite itself would produce.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// Create builds a database file under a test temp dir by executing the
// statements in order and returns its path. Statements run on a single
// connection, so pragmas such as page_size stick for the statements
// that follow.
func Create(t *testing.T, stmts ...string) string {
	t.Helper()
	return CreateNamed(t, "test.db", stmts...)
}

// CreateNamed is Create with a caller-chosen file name.
func CreateNamed(t *testing.T, name string, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("failed to get connection: %v", err)
	}
	defer conn.Close()

	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("failed to exec %q: %v", stmt, err)
		}
	}
	return path
}

// Open opens a fixture with the pure-Go driver for differential
// checks. The handle is closed when the test finishes.
func Open(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
