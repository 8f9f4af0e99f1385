// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for Today I Learned.

# Handler Types

Both handlers resolve the visitor's facts.Controller through a
session.Manager and work on it:

  - PageHandler: the server-rendered page and its form posts
  - FactHandler: the JSON API

Handlers are created via constructor functions:

	tmpl, err := handlers.ParseTemplates()
	pageHandler := handlers.NewPageHandler(sessions, tmpl, cfg.RequestTimeout)
	factHandler := handlers.NewFactHandler(sessions, cfg.RequestTimeout)

# Page

	GET  /                          → Index
	POST /category                  → SetCategory
	POST /form/toggle               → ToggleForm
	POST /facts                     → Submit
	POST /facts/{id}/vote/{counter} → Vote
	GET  /static/style.css          → Style

Posts sent by HTMX (HX-Request: true) get the "main" fragment back.
Plain form posts are redirected to / with 303 See Other. Failed store
requests show up as a banner on the next render.

# JSON API

	GET  /api/categories         → ListCategories
	GET  /api/facts              → GetState
	POST /api/facts/refresh      → Refresh
	PUT  /api/facts/category     → SetCategory
	POST /api/facts              → Submit
	POST /api/facts/{id}/votes   → Vote
	PUT  /api/form               → SetForm

Status codes:

  - 400: invalid JSON, id or counter, unknown filter category
  - 404: fact is not in the visitor's current list
  - 409: a submit or a vote on the same fact is still in flight
  - 422: form validation failed
  - 502: the store request failed; the message is the alert text

# Store Calls

Store calls are detached from the client connection and bounded by the
configured request timeout, so a request that reached the store always
settles its state.
*/
package handlers
