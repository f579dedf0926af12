package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/modgate/internal/shared/id"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

// slidingWindowScript prunes, counts, conditionally records and refreshes the
// expiry of one client's window in a single atomic step.
//
// KEYS[1] window key
// ARGV[1] now (unix micros)
// ARGV[2] exclusive prune bound, "(" + cutoff micros
// ARGV[3] max requests
// ARGV[4] unique member for this request
// ARGV[5] key ttl in milliseconds
var slidingWindowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[2])
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[3]) then
  return {0, count}
end
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return {1, count + 1}
`)

// RedisLimiter shares one sliding window per client across every instance
// pointed at the same Redis. Key expiry replaces the in-memory sweep.
type RedisLimiter struct {
	client    redis.UniversalClient
	cfg       Config
	keyPrefix string
	log       logger.Interface
}

// NewRedisLimiter creates a Redis-backed sliding window limiter.
func NewRedisLimiter(client redis.UniversalClient, cfg Config, keyPrefix string, log logger.Interface) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "modgate:ratelimit:"
	}
	return &RedisLimiter{
		client:    client,
		cfg:       cfg.withDefaults(),
		keyPrefix: keyPrefix,
		log:       log,
	}
}

// Admit applies the same inclusive-boundary rule as the in-memory limiter.
// When Redis cannot be reached the request is admitted and the decision is
// marked Degraded.
func (l *RedisLimiter) Admit(ctx context.Context, clientID string, now time.Time) (Decision, error) {
	result, err := l.eval(ctx, clientID, now)
	if err != nil {
		l.log.Warnw("rate limiter store unavailable, admitting request",
			"client_id", clientID,
			"error", err,
		)
		return Decision{
			Allowed:   true,
			Limit:     l.cfg.MaxRequests,
			Remaining: l.cfg.MaxRequests,
			Degraded:  true,
		}, nil
	}

	if result[0] == 0 {
		return denied(l.cfg), nil
	}
	return allowed(l.cfg, int(result[1])), nil
}

func (l *RedisLimiter) eval(ctx context.Context, clientID string, now time.Time) ([]int64, error) {
	nowMicros := now.UnixMicro()
	cutoffMicros := now.Add(-l.cfg.Window).UnixMicro()
	member := fmt.Sprintf("%d-%s", nowMicros, id.MustGenerate(8))
	ttl := (l.cfg.Window + time.Second).Milliseconds()

	result, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.key(clientID)},
		nowMicros,
		fmt.Sprintf("(%d", cutoffMicros),
		l.cfg.MaxRequests,
		member,
		ttl,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run sliding window script: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected sliding window reply: %v", result)
	}
	return result, nil
}

// Reset forgets every request recorded for clientID.
func (l *RedisLimiter) Reset(ctx context.Context, clientID string) error {
	if err := l.client.Del(ctx, l.key(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", clientID, err)
	}
	return nil
}

// Ping reports whether the backing store is reachable.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLimiter) key(clientID string) string {
	return l.keyPrefix + clientID
}
