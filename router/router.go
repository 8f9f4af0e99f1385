// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/today-i-learned/cliparse"
	"github.com/danielhkuo/today-i-learned/handlers"
	"github.com/danielhkuo/today-i-learned/middleware"
	"github.com/danielhkuo/today-i-learned/session"
	"github.com/danielhkuo/today-i-learned/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	tmpl, err := handlers.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	// Initialize handlers
	sessions := session.NewManager(st, cfg.SessionSalt, cfg.SessionTTL, cfg.RequestTimeout)
	pageHandler := handlers.NewPageHandler(sessions, tmpl, cfg.RequestTimeout)
	factHandler := handlers.NewFactHandler(sessions, cfg.RequestTimeout)
	voteLimiter := middleware.NewIPLimiter(cfg.VoteRate, cfg.VoteBurst, cfg.SessionSalt)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Page
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Index))
	mux.HandleFunc("GET /static/style.css", pageHandler.Style)
	mux.HandleFunc("POST /category", middleware.WithLogging(pageHandler.SetCategory))
	mux.HandleFunc("POST /form/toggle", middleware.WithLogging(pageHandler.ToggleForm))
	mux.HandleFunc("POST /facts", middleware.WithLogging(pageHandler.Submit))
	mux.HandleFunc("POST /facts/{id}/vote/{counter}", middleware.WithLogging(middleware.RateLimit(voteLimiter, pageHandler.Vote)))

	// JSON API
	mux.HandleFunc("GET /api/categories", middleware.WithLogging(factHandler.ListCategories))
	mux.HandleFunc("GET /api/facts", middleware.WithLogging(factHandler.GetState))
	mux.HandleFunc("POST /api/facts/refresh", middleware.WithLogging(factHandler.Refresh))
	mux.HandleFunc("PUT /api/facts/category", middleware.WithLogging(factHandler.SetCategory))
	mux.HandleFunc("POST /api/facts", middleware.WithLogging(factHandler.Submit))
	mux.HandleFunc("POST /api/facts/{id}/votes", middleware.WithLogging(middleware.RateLimit(voteLimiter, factHandler.Vote)))
	mux.HandleFunc("PUT /api/form", middleware.WithLogging(factHandler.SetForm))

	return mux, nil
}
