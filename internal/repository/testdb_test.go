package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// testSchema mirrors the MySQL schema in sqlite dialect. The
// repositories stick to portable SQL, so the same statements run
// against both engines.
const testSchema = `
CREATE TABLE users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	password   TEXT NOT NULL,
	full_name  TEXT,
	role_id    INTEGER,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE categories (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	description TEXT,
	is_active   BOOLEAN NOT NULL DEFAULT 1
);
CREATE TABLE complaints (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     INTEGER NOT NULL,
	subject     TEXT NOT NULL,
	description TEXT NOT NULL,
	photo_url   TEXT NOT NULL,
	location    TEXT NOT NULL DEFAULT '',
	category_id INTEGER NOT NULL,
	status      TEXT NOT NULL DEFAULT 'pending',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// newTestDB opens an in-memory sqlite database with the test schema.
// The pool is pinned to a single connection; each sqlite :memory:
// connection is its own database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create test schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser inserts a user directly and returns its id.
func seedUser(t *testing.T, db *sql.DB, username, email string) uint64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO users (username, email, password) VALUES (?, ?, ?)",
		username, email, "$2a$04$notarealdigestnotarealdiges")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// seedCategory inserts a category directly and returns its id.
func seedCategory(t *testing.T, db *sql.DB, name string) uint64 {
	t.Helper()
	res, err := db.ExecContext(context.Background(),
		"INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// countRows returns the number of rows in a table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
