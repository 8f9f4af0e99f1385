// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/danielhkuo/today-i-learned/auth"
	"github.com/danielhkuo/today-i-learned/facts"
	"github.com/danielhkuo/today-i-learned/store"
)

// CookieName is the cookie carrying the signed session id
const CookieName = "til_session"

// Manager hands out one facts.Controller per browser. Idle sessions
// expire after the TTL; every access pushes the expiry back.
type Manager struct {
	store   store.Store
	salt    string
	ttl     time.Duration
	timeout time.Duration
	cache   *gocache.Cache

	// guards get-or-create so one id never gets two controllers
	mu sync.Mutex
}

// NewManager builds a manager over st. timeout bounds the initial load of
// a new session.
func NewManager(st store.Store, salt string, ttl, timeout time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := gocache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, _ interface{}) {
		slog.Debug("session expired", "session", id)
	})
	return &Manager{
		store:   st,
		salt:    salt,
		ttl:     ttl,
		timeout: timeout,
		cache:   c,
	}
}

// Controller returns the caller's controller, starting a session (and
// its initial load) when the request carries no valid cookie. The cookie
// is (re)issued on every call to keep its expiry in step with the cache.
func (m *Manager) Controller(w http.ResponseWriter, r *http.Request) *facts.Controller {
	id := ""
	if cookie, err := r.Cookie(CookieName); err == nil {
		if verified, err := auth.VerifySession(cookie.Value, m.salt); err == nil {
			id = verified
		} else {
			slog.Warn("ignoring session cookie", "error", err)
		}
	}
	if id == "" {
		id = auth.GenerateSessionID()
	}

	ctrl, created := m.getOrCreate(id)
	if created {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), m.timeout)
		// Failures surface as alerts on the controller
		_ = ctrl.Load(ctx)
		cancel()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    auth.SignSession(id, m.salt),
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctrl
}

func (m *Manager) getOrCreate(id string) (*facts.Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.cache.Get(id); ok {
		ctrl := v.(*facts.Controller)
		m.cache.SetDefault(id, ctrl)
		return ctrl, false
	}

	ctrl := facts.NewController(m.store, slog.With("session", id))
	m.cache.SetDefault(id, ctrl)
	slog.Info("session started", "session", id)
	return ctrl, true
}

// Len is the number of live sessions
func (m *Manager) Len() int {
	return m.cache.ItemCount()
}
