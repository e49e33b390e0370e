package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Pinger probes a single dependency. Implementations must honor the context deadline.
type Pinger func(ctx context.Context) error

// Handler exposes HTTP handlers for health endpoints. Nil pingers are treated as healthy
// so the server can come up before optional dependencies are wired.
type Handler struct {
	DB           Pinger
	Redis        Pinger
	DBTimeout    time.Duration
	RedisTimeout time.Duration
}

var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady flips the readiness gate. Graceful shutdown sets it to false so load
// balancers drain the instance before connections are closed.
func SetReady(v bool) {
	ready.Store(v)
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate and dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !ready.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	status := map[string]string{
		"db":    h.probe(r.Context(), h.DB, h.dbTimeout()),
		"redis": h.probe(r.Context(), h.Redis, h.redisTimeout()),
	}

	w.Header().Set("Content-Type", "application/json")
	if status["db"] != "ok" || status["redis"] != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) probe(ctx context.Context, ping Pinger, timeout time.Duration) string {
	if ping == nil {
		return "ok"
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func (h Handler) dbTimeout() time.Duration {
	if h.DBTimeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.DBTimeout
}

func (h Handler) redisTimeout() time.Duration {
	if h.RedisTimeout <= 0 {
		return 300 * time.Millisecond
	}
	return h.RedisTimeout
}
