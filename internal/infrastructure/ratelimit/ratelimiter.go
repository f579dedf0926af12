// Package ratelimit implements per-client admission control over a trailing
// time window.
package ratelimit

import (
	"context"
	"time"
)

const (
	DefaultWindow        = 60 * time.Second
	DefaultMaxRequests   = 60
	DefaultSweepInterval = 60 * time.Second
)

// Config is fixed once a limiter is built.
type Config struct {
	Window        time.Duration
	MaxRequests   int
	SweepInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.MaxRequests <= 0 {
		c.MaxRequests = DefaultMaxRequests
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	return c
}

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed bool
	// Limit is the number of requests allowed per window.
	Limit int
	// Remaining is how many more requests fit in the current window.
	Remaining int
	// RetryAfter is set on denials. It is always the full window length.
	RetryAfter time.Duration
	// Degraded marks a decision taken without consulting the backing store.
	Degraded bool
}

// Limiter decides whether a client may issue another request at now.
// A denied request is never recorded; an allowed one always is.
type Limiter interface {
	Admit(ctx context.Context, clientID string, now time.Time) (Decision, error)
	Reset(ctx context.Context, clientID string) error
}

// Pinger is implemented by limiters backed by an external store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func allowed(cfg Config, count int) Decision {
	return Decision{
		Allowed:   true,
		Limit:     cfg.MaxRequests,
		Remaining: cfg.MaxRequests - count,
	}
}

func denied(cfg Config) Decision {
	return Decision{
		Allowed:    false,
		Limit:      cfg.MaxRequests,
		Remaining:  0,
		RetryAfter: cfg.Window,
	}
}

// Unlimited admits every request. It is installed when rate limiting is disabled.
type Unlimited struct{}

func (Unlimited) Admit(context.Context, string, time.Time) (Decision, error) {
	return Decision{Allowed: true, Limit: -1, Remaining: -1}, nil
}

func (Unlimited) Reset(context.Context, string) error {
	return nil
}
