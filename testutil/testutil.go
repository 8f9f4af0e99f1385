// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/today-i-learned/cliparse"
	"github.com/danielhkuo/today-i-learned/db"
	"github.com/danielhkuo/today-i-learned/models"
)

var dbCounter atomic.Int64

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call gets its own database, closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	conn, err := db.Open(db.DialectSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		StoreType:      cliparse.StoreSQLite,
		DatabaseURL:    "file::memory:",
		Table:          "facts",
		SessionSalt:    "test-session-salt",
		SessionTTL:     time.Hour,
		RequestTimeout: 5 * time.Second,
		VoteRate:       1000,
		VoteBurst:      1000,
		LogLevel:       "error",
	}
}

// SeedFact inserts a fact with explicit counters and returns it as stored
func SeedFact(t *testing.T, conn *sql.DB, f models.Fact) models.Fact {
	t.Helper()

	if f.Source == "" {
		f.Source = "http://example.com"
	}
	if f.CreatedIn == 0 {
		f.CreatedIn = time.Now().Year()
	}

	err := conn.QueryRow(`
		INSERT INTO facts (text, source, category, "votesInteresting", "votesMindblowing", "votesFalse", "createdIn")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, f.Text, f.Source, f.Category, f.VotesInteresting, f.VotesMindblowing, f.VotesFalse, f.CreatedIn).Scan(&f.ID)
	if err != nil {
		t.Fatalf("Failed to seed fact: %v", err)
	}

	return f
}

// CountFacts returns the number of rows in the facts table
func CountFacts(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM facts`).Scan(&n); err != nil {
		t.Fatalf("Failed to count facts: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
