// Package bootstrap loads configuration and assembles the components shared
// by the CLI commands.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/config"
	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/infrastructure/scoring"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

// Flags common to every command.
type Flags struct {
	Env        string
	ConfigFile string

	// LogToStderr moves stdout logging to stderr for commands that print
	// results on stdout.
	LogToStderr bool
}

// LoadConfig loads configuration and initialises the global logger.
func LoadConfig(flags Flags) (*config.Config, error) {
	cfg, err := config.Load(config.Options{Env: flags.Env, File: flags.ConfigFile})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.LogToStderr && (cfg.Logger.OutputPath == "" || cfg.Logger.OutputPath == "stdout") {
		cfg.Logger.OutputPath = "stderr"
	}

	if err := logger.Init(cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// Components are the long-lived collaborators of the moderation pipeline.
type Components struct {
	Limiter ratelimit.Limiter
	Scorer  moderation.Scorer

	redisClient *redis.Client
}

// Build creates the limiter and scorer described by cfg. A Redis connection is
// only opened for the redis rate limit backend.
func Build(ctx context.Context, cfg *config.Config, log logger.Interface) (*Components, error) {
	c := &Components{}

	// Pass a nil interface, not a typed nil, when Redis is not used.
	var universal redis.UniversalClient
	if cfg.RateLimit.Enabled && cfg.RateLimit.Backend == ratelimit.BackendRedis {
		c.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := c.redisClient.Ping(ctx).Err(); err != nil {
			// The limiter fails open, so an unreachable Redis is not fatal.
			log.Warnw("redis not reachable at startup", "address", cfg.Redis.GetAddr(), "error", err)
		} else {
			log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
		}
		universal = c.redisClient
	}

	limiter, err := ratelimit.New(cfg.RateLimit, universal, log.Named("ratelimit"))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}
	c.Limiter = limiter

	scorer, err := scoring.New(ctx, cfg.Scorer, cfg.Moderation, log.Named("scoring"))
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create category scorer: %w", err)
	}
	c.Scorer = scorer

	return c, nil
}

// Close releases external connections.
func (c *Components) Close() {
	if c.redisClient != nil {
		_ = c.redisClient.Close()
	}
}
