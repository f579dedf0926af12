package ratelimit

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	sharedConfig "github.com/orris-inc/modgate/internal/shared/config"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New builds the limiter selected by cfg. redisClient is only required for
// the redis backend.
func New(cfg sharedConfig.RateLimitConfig, redisClient redis.UniversalClient, log logger.Interface) (Limiter, error) {
	if !cfg.Enabled {
		log.Infow("rate limiting disabled")
		return Unlimited{}, nil
	}

	limiterCfg := Config{
		Window:        cfg.Window,
		MaxRequests:   cfg.MaxRequests,
		SweepInterval: cfg.SweepInterval,
	}

	switch cfg.Backend {
	case BackendMemory, "":
		log.Infow("using in-memory rate limiter",
			"window", limiterCfg.Window,
			"max_requests", limiterCfg.MaxRequests,
		)
		return NewSlidingWindowLimiter(limiterCfg, log), nil
	case BackendRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis rate limit backend requires a redis client")
		}
		log.Infow("using redis rate limiter",
			"window", limiterCfg.Window,
			"max_requests", limiterCfg.MaxRequests,
		)
		return NewRedisLimiter(redisClient, limiterCfg, cfg.KeyPrefix, log), nil
	default:
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}
