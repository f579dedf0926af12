package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/orris-inc/modgate/internal/shared/goroutine"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

// SlidingWindowLimiter keeps the request timestamps of every client in process
// memory. Each client's window is read and updated under that key's bucket
// lock, so two requests from one client can never both take the last slot,
// while requests from different clients do not contend on a shared lock.
type SlidingWindowLimiter struct {
	cfg     Config
	windows *xsync.MapOf[string, []time.Time]
	log     logger.Interface

	lastSweep atomic.Int64
	sweeping  atomic.Bool
}

// NewSlidingWindowLimiter creates an in-memory sliding window limiter.
func NewSlidingWindowLimiter(cfg Config, log logger.Interface) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		cfg:     cfg.withDefaults(),
		windows: xsync.NewMapOf[string, []time.Time](),
		log:     log,
	}
}

// Admit records a request from clientID at now unless the client already
// has MaxRequests timestamps inside [now-Window, now].
func (l *SlidingWindowLimiter) Admit(_ context.Context, clientID string, now time.Time) (Decision, error) {
	cutoff := now.Add(-l.cfg.Window)

	var decision Decision
	l.windows.Compute(clientID, func(ts []time.Time, _ bool) ([]time.Time, bool) {
		ts = prune(ts, cutoff)
		if len(ts) >= l.cfg.MaxRequests {
			decision = denied(l.cfg)
			return ts, false
		}
		ts = append(ts, now)
		decision = allowed(l.cfg, len(ts))
		return ts, false
	})

	l.maybeSweep(now)
	return decision, nil
}

// Count returns how many of clientID's requests are still inside the window at now.
func (l *SlidingWindowLimiter) Count(clientID string, now time.Time) int {
	cutoff := now.Add(-l.cfg.Window)

	var n int
	l.windows.Compute(clientID, func(ts []time.Time, loaded bool) ([]time.Time, bool) {
		if !loaded {
			return nil, true
		}
		ts = prune(ts, cutoff)
		n = len(ts)
		return ts, len(ts) == 0
	})
	return n
}

// Reset forgets every request recorded for clientID.
func (l *SlidingWindowLimiter) Reset(_ context.Context, clientID string) error {
	l.windows.Delete(clientID)
	return nil
}

// Size returns the number of clients currently tracked.
func (l *SlidingWindowLimiter) Size() int {
	return l.windows.Size()
}

// Sweep drops every client whose window holds no timestamp at or after
// now-Window. Keys are collected first and each one is re-checked under its
// own bucket lock, so the scan never blocks admissions for long.
func (l *SlidingWindowLimiter) Sweep(now time.Time) int {
	cutoff := now.Add(-l.cfg.Window)

	var keys []string
	l.windows.Range(func(key string, _ []time.Time) bool {
		keys = append(keys, key)
		return true
	})

	removed := 0
	for _, key := range keys {
		l.windows.Compute(key, func(ts []time.Time, loaded bool) ([]time.Time, bool) {
			if !loaded {
				return nil, true
			}
			ts = prune(ts, cutoff)
			if len(ts) == 0 {
				removed++
				return nil, true
			}
			return ts, false
		})
	}
	return removed
}

// maybeSweep starts a background sweep once SweepInterval has passed since the
// previous one. At most one sweep runs at a time.
func (l *SlidingWindowLimiter) maybeSweep(now time.Time) {
	nowNano := now.UnixNano()
	last := l.lastSweep.Load()
	if last == 0 {
		l.lastSweep.CompareAndSwap(0, nowNano)
		return
	}
	if nowNano-last < int64(l.cfg.SweepInterval) {
		return
	}
	if !l.lastSweep.CompareAndSwap(last, nowNano) {
		return
	}
	if !l.sweeping.CompareAndSwap(false, true) {
		return
	}

	goroutine.SafeGo(l.log, "ratelimit-sweep", func() {
		defer l.sweeping.Store(false)
		removed := l.Sweep(now)
		l.log.Debugw("rate limit sweep finished",
			"removed_clients", removed,
			"tracked_clients", l.windows.Size(),
		)
	})
}

// prune keeps the timestamps at or after cutoff, compacting in place.
// Timestamps may arrive slightly out of order under concurrency, so every
// entry is checked rather than cutting at the first in-window one.
func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if !t.Before(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
