package restapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"transitplanner.dev/internal/models"
)

// RateLimitMiddleware provides per-API-key rate limiting over the planner's
// query endpoint.
type RateLimitMiddleware struct {
	limiters    map[string]*rate.Limiter
	mu          sync.RWMutex
	rateLimit   rate.Limit
	burstSize   int
	cleanupTick *time.Ticker
	exemptKeys  map[string]bool
}

// NewRateLimitMiddleware creates a new rate limiting middleware.
// ratePerSecond is the number of requests allowed per second per API key,
// doubling as the burst size; interval is the window that rate is measured
// over (the query budget does not bound rate limiting, this is a
// separate concern).
func NewRateLimitMiddleware(ratePerSecond int, interval time.Duration) func(http.Handler) http.Handler {
	var rateLimit rate.Limit
	if ratePerSecond <= 0 {
		rateLimit = rate.Inf
		if ratePerSecond == 0 {
			rateLimit = 0
		}
	} else {
		rateLimit = rate.Every(interval / time.Duration(ratePerSecond))
	}

	middleware := &RateLimitMiddleware{
		limiters:    make(map[string]*rate.Limiter),
		rateLimit:   rateLimit,
		burstSize:   ratePerSecond,
		cleanupTick: time.NewTicker(5 * time.Minute),
		exemptKeys:  map[string]bool{},
	}

	go middleware.cleanup()

	return middleware.rateLimitHandler
}

func (rl *RateLimitMiddleware) getLimiter(apiKey string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[apiKey]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[apiKey]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rateLimit, rl.burstSize)
	rl.limiters[apiKey] = limiter

	return limiter
}

func (rl *RateLimitMiddleware) rateLimitHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.URL.Query().Get("key")
		if apiKey == "" {
			apiKey = "__no_key__"
		}

		if rl.exemptKeys[apiKey] {
			next.ServeHTTP(w, r)
			return
		}

		limiter := rl.getLimiter(apiKey)

		if !limiter.Allow() {
			rl.sendRateLimitExceeded(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sendRateLimitExceeded sends a 429 Too Many Requests response in the same
// ResponseModel envelope every other endpoint uses.
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	var retryAfter time.Duration
	switch rl.rateLimit {
	case 0:
		retryAfter = time.Hour
	case rate.Inf:
		retryAfter = time.Second
	default:
		retryAfter = time.Duration(1) / time.Duration(rl.rateLimit)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.ResponseModel{
		Code:        http.StatusTooManyRequests,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "Rate limit exceeded. Please try again later.",
		Version:     2,
	}
	_ = json.NewEncoder(w).Encode(response)
}

// cleanup periodically drops limiters that currently have tokens available,
// letting memory for inactive API keys get reclaimed.
func (rl *RateLimitMiddleware) cleanup() {
	for range rl.cleanupTick.C {
		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			if rl.exemptKeys[key] {
				continue
			}
			if limiter.Tokens() > 0 {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Stop stops the cleanup goroutine.
func (rl *RateLimitMiddleware) Stop() {
	if rl.cleanupTick != nil {
		rl.cleanupTick.Stop()
	}
}
