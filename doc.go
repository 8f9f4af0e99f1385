// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Today I Learned server.

Today I Learned is a small community board of short facts. Visitors
browse facts by category, share new ones with a source link and vote
them interesting, mind-blowing or false. A fact with more false votes
than positive ones is marked disputed.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	SESSION_SALT=... go run .

Or against a hosted table:

	go run . -t rest -rest-url https://abc.supabase.co -session-salt ...

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - SESSION_SALT (-session-salt): Secret for session cookie HMAC
  - DATABASE_URL (-d): connection string, for -t postgres
  - SUPABASE_URL (-rest-url), SUPABASE_KEY (-rest-key): for -t rest

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - STORE_TYPE (-t): rest, postgres or sqlite (default: sqlite, file:facts.db)
  - FACTS_TABLE (-table): table name for the rest store (default: facts)
  - REQUEST_TIMEOUT (-timeout): bound on each store call (default: 10s)
  - SESSION_TTL (-session-ttl): idle session lifetime (default: 30m)
  - VOTE_RATE, VOTE_BURST (-vote-rate, -vote-burst): per-IP vote limit (default: 5/s, 10)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

  - facts: per-visitor controller (fetch, submit, vote, alerts)
  - store: REST and SQL backends behind one interface
  - session: one controller per browser, kept in an expiring cache
  - handlers: HTML page and JSON API
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON helpers
  - category: the fixed category registry
  - models: domain, request and response types
  - auth: session ids and cookie signatures
  - db: connection and schema for postgres and sqlite
  - cliparse: Configuration parsing

The til command in cmd/til is a terminal client over the same store.

See package documentation for each component.
*/
package main
