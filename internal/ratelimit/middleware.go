package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tiendacr/backend-tienda/internal/common"
)

// Policy describes how to derive a rate limit key and thresholds.
type Policy struct {
	Key    func(*http.Request) string
	Window time.Duration
	Max    int
}

// KeyByClientIP derives the limiter key from the caller's IP address.
func KeyByClientIP(r *http.Request) string {
	return common.ClientIP(r)
}

// Handler enforces rate limits before delegating to the next handler.
// Limiter failures fail open: a Redis outage must not take quotes down.
type Handler struct {
	Limiter Limiter
	Policy  Policy
	OnError func(error)
}

// Middleware implements the http.Handler middleware interface.
func (h Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Policy.Key == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := h.Policy.Key(r)
		allowed, remaining, resetAt, err := h.Limiter.Allow(r.Context(), key, h.Policy.Window, h.Policy.Max)
		if err != nil {
			if h.OnError != nil {
				h.OnError(err)
			}
			next.ServeHTTP(w, r)
			return
		}

		limitValue := h.Policy.Max
		if limitValue < 0 {
			limitValue = 0
		}
		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.Itoa(limitValue))
		headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			headers.Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
