// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware wraps handlers with logging, CORS and vote rate
limiting, and holds the JSON helpers shared by the API handlers.

# Request Logging

	mux.HandleFunc("GET /{$}", middleware.WithLogging(pages.Index))

Every request gets an X-Request-ID (taken from the request or a new
uuid) that is echoed in the response and attached to its log lines.
Completion is logged at info, warn for 4xx and error for 5xx.

# Vote Rate Limiting

	limiter := middleware.NewIPLimiter(cfg.VoteRate, cfg.VoteBurst, cfg.SessionSalt)
	mux.HandleFunc("POST /api/facts/{id}/votes",
		middleware.WithLogging(middleware.RateLimit(limiter, h.Vote)))

One token bucket per client, keyed by the salted IP hash. Exhausted
clients get 429 with Retry-After; idle buckets expire after ten minutes.

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusCreated, view)
	middleware.ErrorResponse(w, http.StatusConflict, err.Error())

ParseJSONBody reads at most 64 KiB.

GetClientIP prefers X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
