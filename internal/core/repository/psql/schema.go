// Package psql implements the repository interfaces on PostgreSQL
// through a pgx/v5 connection pool.
package psql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
    id       BIGSERIAL PRIMARY KEY,
    name     TEXT NOT NULL,
    email    TEXT NOT NULL,
    phone_no TEXT UNIQUE NOT NULL,
    message  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS personal_details (
    id         BIGSERIAL PRIMARY KEY,
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
    id              BIGSERIAL PRIMARY KEY,
    username        TEXT UNIQUE NOT NULL,
    email           TEXT UNIQUE NOT NULL,
    phone_number    TEXT UNIQUE NOT NULL,
    hashed_password TEXT NOT NULL,
    user_type       TEXT NOT NULL
);
`

// EnsureSchema creates the service tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
