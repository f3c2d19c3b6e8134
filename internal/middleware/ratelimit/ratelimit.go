// Package ratelimit throttles requests per client over fixed windows.
package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds rate limiter configuration
type Config struct {
	// Limit is the number of requests a client may make per Window.
	Limit  int
	Window time.Duration
	// Clients idle for IdleAfter are forgotten by the sweep that runs
	// every CleanupInterval.
	IdleAfter       time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig allows 120 requests per minute.
func DefaultConfig() Config {
	return Config{
		Limit:           120,
		Window:          time.Minute,
		IdleAfter:       10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Limit <= 0 {
		c.Limit = d.Limit
	}
	if c.Window <= 0 {
		c.Window = d.Window
	}
	if c.IdleAfter <= 0 {
		c.IdleAfter = d.IdleAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}

// window tracks one client's current counting period.
type window struct {
	start time.Time
	last  time.Time
	count int
}

// Limiter counts requests per client key.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	windows map[string]window

	rejected atomic.Int64
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter and starts its idle-client sweep.
func NewLimiter(cfg Config) *Limiter {
	l := &Limiter{
		cfg:     cfg.withDefaults(),
		now:     time.Now,
		windows: make(map[string]window),
		stop:    make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow reports whether a request from key fits in its current window.
func (l *Limiter) Allow(key string) bool {
	ok, _ := l.take(key)
	return ok
}

// take counts one request. When refused it also returns how long until the
// client's window resets.
func (l *Limiter) take(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, seen := l.windows[key]
	if !seen || now.Sub(w.start) >= l.cfg.Window {
		w = window{start: now}
	}
	w.last = now
	w.count++
	l.windows[key] = w

	if w.count > l.cfg.Limit {
		l.rejected.Add(1)
		return false, w.start.Add(l.cfg.Window).Sub(now)
	}
	return true, 0
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep forgets idle clients and returns how many were removed.
func (l *Limiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.cfg.IdleAfter)
	removed := 0
	for key, w := range l.windows {
		if w.last.Before(cutoff) {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// ActiveClients returns the number of currently tracked clients
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Rejected returns how many requests have been refused.
func (l *Limiter) Rejected() int64 {
	return l.rejected.Load()
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Middleware refuses requests over the limit with 429 and a Retry-After
// header in whole seconds. onLimit renders the refusal body; when nil a
// plain-text message is written.
func (l *Limiter) Middleware(key func(*http.Request) string, onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.take(key(r))
			if ok {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
			if onLimit != nil {
				onLimit(w, r)
				return
			}
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
		})
	}
}

func retryAfterSeconds(wait time.Duration) int {
	return max(1, int(math.Ceil(wait.Seconds())))
}
