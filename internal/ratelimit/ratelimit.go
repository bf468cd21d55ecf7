// Package ratelimit throttles chat requests per client identity with a fixed
// window: coarse and bursty (up to twice the ceiling across a window
// boundary), which is fine for abuse damping, not quota enforcement.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Limiter decides whether a client may issue another request right now.
type Limiter interface {
	Allow(ctx context.Context, clientID string) (bool, error)
}

// record is the per-client counter. A record whose window has passed is
// treated as absent, never as invalid.
type record struct {
	count         int
	windowResetAt time.Time
}

// MemoryLimiter is the in-process fixed-window limiter. Reads and updates of
// a record are atomic with each other; concurrent requests for the same
// client never lose counts.
type MemoryLimiter struct {
	clock   clock.Clock
	window  time.Duration
	ceiling int

	mu      sync.Mutex
	clients map[string]*record
}

// NewMemoryLimiter constructs a limiter allowing ceiling requests per window
// for each client identity.
func NewMemoryLimiter(clk clock.Clock, window time.Duration, ceiling int) *MemoryLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if ceiling <= 0 {
		ceiling = 10
	}
	return &MemoryLimiter{
		clock:   clk,
		window:  window,
		ceiling: ceiling,
		clients: make(map[string]*record),
	}
}

// Allow reports whether the client is under its ceiling for the current
// window. The first call of a window (re)initializes the counter to 1.
func (l *MemoryLimiter) Allow(_ context.Context, clientID string) (bool, error) {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.clients[clientID]
	if !ok || !now.Before(rec.windowResetAt) {
		l.clients[clientID] = &record{count: 1, windowResetAt: now.Add(l.window)}
		return true, nil
	}
	if rec.count >= l.ceiling {
		return false, nil
	}
	rec.count++
	return true, nil
}

// Prune drops records whose window has already reset, bounding the map.
func (l *MemoryLimiter) Prune() int {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for id, rec := range l.clients {
		if !now.Before(rec.windowResetAt) {
			delete(l.clients, id)
			removed++
		}
	}
	return removed
}
