// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported SQL dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
// The dialect name doubles as the database/sql driver name.
func Open(dialect, dsn string) (*sql.DB, error) {
	if dialect != DialectPostgres && dialect != DialectSQLite {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		// A single connection keeps in-memory databases alive and
		// serializes writers.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates the facts table for the given dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var ddl string
	switch dialect {
	case DialectPostgres:
		ddl = postgresSchema
	case DialectSQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS facts (
    id BIGSERIAL PRIMARY KEY,
    text TEXT NOT NULL CHECK (char_length(text) BETWEEN 1 AND 200),
    source TEXT NOT NULL,
    category TEXT NOT NULL,
    "votesInteresting" INTEGER NOT NULL DEFAULT 0 CHECK ("votesInteresting" >= 0),
    "votesMindblowing" INTEGER NOT NULL DEFAULT 0 CHECK ("votesMindblowing" >= 0),
    "votesFalse" INTEGER NOT NULL DEFAULT 0 CHECK ("votesFalse" >= 0),
    "createdIn" INTEGER NOT NULL DEFAULT CAST(EXTRACT(YEAR FROM NOW()) AS INTEGER),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_facts_category ON facts(category);
CREATE INDEX IF NOT EXISTS idx_facts_votes_interesting ON facts("votesInteresting" DESC);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS facts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL CHECK (length(text) BETWEEN 1 AND 200),
    source TEXT NOT NULL,
    category TEXT NOT NULL,
    "votesInteresting" INTEGER NOT NULL DEFAULT 0 CHECK ("votesInteresting" >= 0),
    "votesMindblowing" INTEGER NOT NULL DEFAULT 0 CHECK ("votesMindblowing" >= 0),
    "votesFalse" INTEGER NOT NULL DEFAULT 0 CHECK ("votesFalse" >= 0),
    "createdIn" INTEGER NOT NULL DEFAULT (CAST(strftime('%Y', 'now') AS INTEGER)),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_facts_category ON facts(category);
CREATE INDEX IF NOT EXISTS idx_facts_votes_interesting ON facts("votesInteresting" DESC);
`
