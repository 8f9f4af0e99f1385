// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/today-i-learned/models"
	"github.com/danielhkuo/today-i-learned/session"
	"github.com/danielhkuo/today-i-learned/store"
	"github.com/danielhkuo/today-i-learned/testutil"
)

var errStoreDown = errors.New("store unavailable")

// failingStore fails every call the way an unreachable backend would
type failingStore struct{}

func (failingStore) Select(ctx context.Context, q store.Query) ([]models.Fact, error) {
	return nil, errStoreDown
}

func (failingStore) Insert(ctx context.Context, nf models.NewFact) (models.Fact, error) {
	return models.Fact{}, errStoreDown
}

func (failingStore) UpdateByID(ctx context.Context, id int64, p store.Patch) (models.Fact, error) {
	return models.Fact{}, errStoreDown
}

// newSessions returns a session manager over a seeded in-memory database
func newSessions(t *testing.T) (*session.Manager, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	return session.NewManager(store.NewSQLStore(conn), cfg.SessionSalt, cfg.SessionTTL, cfg.RequestTimeout), conn
}

func seedFacts(t *testing.T, conn *sql.DB) (top, disputed models.Fact) {
	t.Helper()
	top = testutil.SeedFact(t, conn, models.Fact{
		Text:             "Honey never spoils",
		Category:         "science",
		VotesInteresting: 10,
		VotesMindblowing: 2,
	})
	disputed = testutil.SeedFact(t, conn, models.Fact{
		Text:             "Goldfish have a three second memory",
		Category:         "society",
		VotesInteresting: 1,
		VotesFalse:       5,
	})
	return top, disputed
}

// serve runs one request through h, carrying cookie when set, and returns
// the recorder with the session cookie for the next request
func serve(h http.HandlerFunc, req *http.Request, cookie *http.Cookie) (*httptest.ResponseRecorder, *http.Cookie) {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return w, c
		}
	}
	return w, cookie
}
