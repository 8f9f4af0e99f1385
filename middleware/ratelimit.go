// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/danielhkuo/today-i-learned/auth"
)

// idleBucketTTL drops the bucket of a client that has been quiet this long
const idleBucketTTL = 10 * time.Minute

// IPLimiter keeps one token bucket per client IP. Buckets are keyed by
// the salted IP hash so raw addresses are never held in memory.
type IPLimiter struct {
	limiters *gocache.Cache
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	salt     string
}

func NewIPLimiter(perSecond float64, burst int, salt string) *IPLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPLimiter{
		limiters: gocache.New(idleBucketTTL, idleBucketTTL),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		salt:     salt,
	}
}

// Allow takes a token from the bucket of ip without waiting
func (l *IPLimiter) Allow(ip string) bool {
	return l.get(ip).Allow()
}

func (l *IPLimiter) get(ip string) *rate.Limiter {
	key := auth.HashIP(ip, l.salt)
	if v, ok := l.limiters.Get(key); ok {
		l.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the lock
	if v, ok := l.limiters.Get(key); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.rate, l.burst)
	l.limiters.SetDefault(key, limiter)
	return limiter
}

// RateLimit rejects requests with 429 once the client IP runs out of tokens
func RateLimit(l *IPLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(GetClientIP(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(l.rate)))
			ErrorResponse(w, http.StatusTooManyRequests, "too many votes, slow down")
			return
		}
		next(w, r)
	}
}

func retryAfterSeconds(r rate.Limit) int {
	if r <= 0 || r >= 1 {
		return 1
	}
	return int(1/float64(r) + 0.5)
}
