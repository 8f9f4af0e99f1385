// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for Today I Learned.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux, err := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Page (form posts, HTMX aware):

	GET  /                          - Header, form, filter and list
	GET  /static/style.css          - Embedded stylesheet
	POST /category                  - Select a category filter
	POST /form/toggle               - Open or close the form
	POST /facts                     - Share a fact
	POST /facts/{id}/vote/{counter} - Vote (interesting, mindblowing, false)

JSON API:

	GET  /api/categories        - Category registry
	GET  /api/facts             - Visitor state and pending alerts
	POST /api/facts/refresh     - Refetch the current category
	PUT  /api/facts/category    - Select a category filter
	POST /api/facts             - Share a fact
	POST /api/facts/{id}/votes  - Vote
	PUT  /api/form              - Open or close the form

Both vote routes share one per-IP rate limiter built from VoteRate and
VoteBurst.

# Handler Initialization

The router builds one session.Manager over the store and hands it to
both handlers:

	sessions := session.NewManager(st, cfg.SessionSalt, cfg.SessionTTL, cfg.RequestTimeout)
	pageHandler := handlers.NewPageHandler(sessions, tmpl, cfg.RequestTimeout)
	factHandler := handlers.NewFactHandler(sessions, cfg.RequestTimeout)
*/
package router
