// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the facts schema.

# Connecting

Open registers both drivers (lib/pq and modernc.org/sqlite) and pings
the database:

	conn, err := db.Open(db.DialectSQLite, "file:facts.db")

# Schema Creation

CreateSchema initializes the facts table for a dialect:

	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and indexes.

# Tables

  - facts: one row per fact; id and counters are assigned by the database

Counter columns keep their camelCase names ("votesInteresting") so the
SQL schema matches the hosted REST table column for column.
*/
package db
