// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads an optional .env file (godotenv) before calling ParseFlags, so
values from .env behave exactly like exported environment variables.

# Config Fields

  - Port: Server listen port (default: 3000)
  - StoreType: rest, postgres or sqlite (default: sqlite)
  - DatabaseURL: SQL connection string (default file:facts.db for sqlite)
  - RESTURL, RESTKey: hosted project URL and API key (rest store only)
  - Table: table name for the rest store (default: facts)
  - SessionSalt: Secret for session cookie HMAC (required)
  - SessionTTL: idle lifetime of a session (default: 30m)
  - RequestTimeout: timeout for store requests (default: 10s)
  - VoteRate, VoteBurst: per-client vote rate limit (default: 5/s, 10)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags and Environment Variables

	-p              PORT
	-t              STORE_TYPE
	-d              DATABASE_URL
	--rest-url      SUPABASE_URL
	--rest-key      SUPABASE_KEY
	--table         FACTS_TABLE
	--session-salt  SESSION_SALT
	--session-ttl   SESSION_TTL
	--timeout       REQUEST_TIMEOUT
	--vote-rate     VOTE_RATE
	--vote-burst    VOTE_BURST
	--log-level     LOG_LEVEL

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - STORE_TYPE is not one of rest, postgres, sqlite
  - DATABASE_URL is missing for postgres
  - SUPABASE_URL or SUPABASE_KEY is missing for rest
  - SESSION_SALT is missing
*/
package cliparse
