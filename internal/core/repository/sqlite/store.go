// Package sqlite implements the repository interfaces on an embedded
// SQLite database via database/sql and the pure-Go modernc driver.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection shared by the repositories.
type DB struct {
	db *sql.DB
}

const schema = `
PRAGMA journal_mode=WAL;
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS contacts (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    name     TEXT NOT NULL,
    email    TEXT NOT NULL,
    phone_no TEXT UNIQUE NOT NULL,
    message  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS personal_details (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    phone_no   TEXT UNIQUE NOT NULL,
    full_name  TEXT NOT NULL,
    dob        TEXT NOT NULL,
    age        INTEGER NOT NULL,
    gender     TEXT NOT NULL,
    email      TEXT NOT NULL,
    address    TEXT NOT NULL,
    photo_path TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    username        TEXT UNIQUE NOT NULL,
    email           TEXT UNIQUE NOT NULL,
    phone_number    TEXT UNIQUE NOT NULL,
    hashed_password TEXT NOT NULL,
    user_type       TEXT NOT NULL
);
`

// Open opens (or creates) the SQLite database and ensures the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error { return d.db.Close() }

// Ping checks the database connection.
func (d *DB) Ping() error { return d.db.Ping() }
