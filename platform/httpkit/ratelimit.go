package httpkit

import (
	"context"
	"net/http"
	"sync"
	"time"

	"agency_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// RateLimitedCode is the machine-readable error code returned on 429.
const RateLimitedCode = "RATE_LIMITED"

type windowEntry struct {
	count   int
	resetAt time.Time
}

// SubmitLimiter is a fixed-window per-IP request counter gating the public
// submission endpoint. Counters live in process memory only: each instance
// has its own view, and a restart loses all counters.
type SubmitLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
	log     *logger.Logger
	now     func() time.Time
}

// NewSubmitLimiter creates a limiter allowing `limit` requests per `window`
// from a single client address.
func NewSubmitLimiter(limit int, window time.Duration, log *logger.Logger) *SubmitLimiter {
	return &SubmitLimiter{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
		log:     log,
		now:     time.Now,
	}
}

// Allow records one request from the given address and reports whether it is
// within the window's budget. The window slides wholesale: a request arriving
// after resetAt starts a fresh window with count 1.
func (l *SubmitLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[addr]
	if !ok || now.After(entry.resetAt) {
		l.entries[addr] = &windowEntry{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	entry.count++
	return entry.count <= l.limit
}

// Middleware rejects over-budget requests with 429 and a fixed error code.
func (l *SubmitLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			if l.log != nil {
				l.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   RateLimitedCode,
			})
			return
		}

		c.Next()
	}
}

// StartSweep launches a background loop that removes expired entries every
// interval, bounding memory growth. It stops when ctx is cancelled.
func (l *SubmitLimiter) StartSweep(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *SubmitLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for addr, entry := range l.entries {
		if now.After(entry.resetAt) {
			delete(l.entries, addr)
		}
	}
}
