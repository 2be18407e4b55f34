//go:build cgo_sqlite

package exec_test

// These tests compare the engine's output against real SQLite through
// the CGO driver, on files the CGO driver itself wrote.
// Run with: CGO_ENABLED=1 go test -tags cgo_sqlite -v -run CGO

import (
	"database/sql"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3" // CGO driver
)

// setupCGOFixture writes a database with canonical SQLite, closes it,
// and reopens it as the oracle for comparisons.
func setupCGOFixture(t *testing.T, stmts ...string) (string, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "canonical.db")
	writer, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open CGO database: %v", err)
	}
	for _, stmt := range stmts {
		if _, err := writer.Exec(stmt); err != nil {
			writer.Close()
			t.Fatalf("failed to execute %q: %v", stmt, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close CGO database: %v", err)
	}

	oracle, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to reopen CGO database: %v", err)
	}
	t.Cleanup(func() { oracle.Close() })

	return path, oracle
}

func TestCGOComparisonQueries(t *testing.T) {
	path, oracle := setupCGOFixture(t,
		`CREATE TABLE apples (id integer primary key, name text, color text)`,
		`INSERT INTO apples (name, color) VALUES
			('Granny Smith', 'Light Green'),
			('Fuji', 'Red'),
			('Honeycrisp', 'Blush Red'),
			('Golden Delicious', 'Yellow')`,
		`CREATE TABLE cities (id integer primary key, name text, population integer, area real)`,
		`INSERT INTO cities (name, population, area) VALUES
			('Aurich', 42000, 197.2),
			('Leer', 34958, 70.3),
			('Emden', 49913, 112.3)`,
		`INSERT INTO cities (name, population, area) VALUES ('Norden', NULL, NULL)`,
	)

	queries := []string{
		"SELECT name FROM apples",
		"SELECT name, color FROM apples",
		"SELECT id, name, color FROM apples",
		"SELECT name, color FROM apples WHERE color = 'Light Green'",
		"SELECT COUNT(*) FROM apples",
		"SELECT COUNT(*) FROM apples WHERE color = 'Red'",
		"SELECT name FROM cities WHERE id = 3",
		"SELECT name, population FROM cities",
		"SELECT name FROM cities WHERE area = 70.3",
		"SELECT population FROM cities WHERE name = 'Norden'",
	}

	for _, query := range queries {
		t.Run(query, func(t *testing.T) {
			want := driverOutput(t, oracle, query)
			if got := run(t, path, query); got != want {
				t.Errorf("engine disagrees with SQLite for %q:\n  engine: %q\n  sqlite: %q", query, got, want)
			}
		})
	}
}

func TestCGOComparisonDBInfo(t *testing.T) {
	path, oracle := setupCGOFixture(t,
		`PRAGMA page_size = 8192`,
		`CREATE TABLE a (x text)`,
		`CREATE TABLE b (y integer)`,
		`CREATE INDEX idx_b ON b(y)`,
	)

	var pageSize int
	if err := oracle.QueryRow(`PRAGMA page_size`).Scan(&pageSize); err != nil {
		t.Fatalf("failed to read page size: %v", err)
	}
	var tables int
	if err := oracle.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'`).Scan(&tables); err != nil {
		t.Fatalf("failed to count tables: %v", err)
	}

	got := run(t, path, ".dbinfo")
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two .dbinfo lines, got %q", got)
	}
	wantSize := "database page size: " + strconv.Itoa(pageSize)
	if lines[0] != wantSize {
		t.Errorf("page size line = %q, want %q", lines[0], wantSize)
	}
	wantTables := "number of tables: " + strconv.Itoa(tables)
	if lines[1] != wantTables {
		t.Errorf("table count line = %q, want %q", lines[1], wantTables)
	}
}

func TestCGOComparisonTables(t *testing.T) {
	path, oracle := setupCGOFixture(t,
		`CREATE TABLE watermelon (a text)`,
		`CREATE TABLE grapefruit (b text)`,
		`CREATE TABLE cantaloupe (c text)`,
	)

	rows, err := oracle.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid`)
	if err != nil {
		t.Fatalf("failed to list tables: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan name: %v", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to read names: %v", err)
	}

	want := strings.Join(names, " ") + "\n"
	if got := run(t, path, ".tables"); got != want {
		t.Errorf(".tables disagrees with SQLite:\n  engine: %q\n  sqlite: %q", got, want)
	}
}
