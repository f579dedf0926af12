package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/modgate/internal/shared/config"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	RateLimit  sharedConfig.RateLimitConfig  `mapstructure:"rate_limit"`
	Moderation sharedConfig.ModerationConfig `mapstructure:"moderation"`
	Upload     sharedConfig.UploadConfig     `mapstructure:"upload"`
	Scorer     sharedConfig.ScorerConfig     `mapstructure:"scorer"`
	Auth       sharedConfig.AuthConfig       `mapstructure:"auth"`
}

// Options controls where configuration is read from.
type Options struct {
	// Env overrides server.mode when set to anything other than "" or "default".
	Env string
	// File is an explicit config file path. When empty the standard
	// search paths are used and a missing file is not an error.
	File string
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables
func Load(opts Options) (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("MODGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if opts.Env != "" && opts.Env != "default" {
		v.Set("server.mode", opts.Env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects configurations the limiter and decision engine cannot honour.
func (c *Config) Validate() error {
	if c.RateLimit.Enabled {
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate_limit.window must be positive, got %s", c.RateLimit.Window)
		}
		if c.RateLimit.MaxRequests <= 0 {
			return fmt.Errorf("rate_limit.max_requests must be positive, got %d", c.RateLimit.MaxRequests)
		}
		switch c.RateLimit.Backend {
		case "memory", "redis":
		default:
			return fmt.Errorf("unknown rate_limit.backend %q", c.RateLimit.Backend)
		}
	}

	if t := c.Moderation.DefaultThreshold; !inUnitInterval(t) {
		return fmt.Errorf("moderation.default_threshold must be within [0,1], got %v", t)
	}
	for category, t := range c.Moderation.Thresholds {
		if !inUnitInterval(t) {
			return fmt.Errorf("moderation.thresholds.%s must be within [0,1], got %v", category, t)
		}
	}
	if c.Moderation.TextMinLength < 1 || c.Moderation.TextMaxLength < c.Moderation.TextMinLength {
		return fmt.Errorf("invalid text length bounds [%d,%d]", c.Moderation.TextMinLength, c.Moderation.TextMaxLength)
	}
	if c.Moderation.ScoringTimeout <= 0 {
		return fmt.Errorf("moderation.scoring_timeout must be positive")
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("upload.max_size must be positive")
	}

	return nil
}

// inUnitInterval rejects NaN as well as out-of-range values.
func inUnitInterval(t float64) bool {
	return t >= 0 && t <= 1
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.version", "1.0.0")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_grace", "5s")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("rate_limit.window", "60s")
	v.SetDefault("rate_limit.max_requests", 60)
	v.SetDefault("rate_limit.sweep_interval", "60s")
	v.SetDefault("rate_limit.key_prefix", "modgate:ratelimit:")
	v.SetDefault("rate_limit.exempt_paths", []string{
		"/health",
		"/ready",
		"/metrics",
		"/swagger/*",
		"/api/docs",
		"/api/redoc",
		"/api/v1/openapi.json",
	})

	// Moderation defaults
	v.SetDefault("moderation.default_threshold", 0.7)
	v.SetDefault("moderation.text_categories", []string{
		"hate_speech",
		"harassment",
		"self_harm",
		"sexual_content",
		"violence",
		"illegal_activities",
		"personal_information",
	})
	v.SetDefault("moderation.image_categories", []string{
		"explicit_content",
		"violence",
		"suggestive_content",
	})
	v.SetDefault("moderation.scoring_timeout", "10s")
	v.SetDefault("moderation.text_min_length", 1)
	v.SetDefault("moderation.text_max_length", 10000)

	// Upload defaults
	v.SetDefault("upload.max_size", 10*1024*1024)
	v.SetDefault("upload.allowed_types", []string{"image/jpeg", "image/png", "image/gif", "image/webp"})
	v.SetDefault("upload.allowed_extensions", []string{".jpg", ".jpeg", ".png", ".gif", ".webp"})

	// Scorer defaults
	v.SetDefault("scorer.text", "lexicon")
	v.SetDefault("scorer.image", "none")
	v.SetDefault("scorer.cache_size", 4096)
	v.SetDefault("scorer.cache_ttl", "5m")
	v.SetDefault("scorer.http.timeout", "5s")
	v.SetDefault("scorer.http.retry_max", 2)
	v.SetDefault("scorer.http.requests_per_second", 20)
	v.SetDefault("scorer.http.burst", 40)
	v.SetDefault("scorer.bedrock.region", "us-east-1")
	v.SetDefault("scorer.bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("scorer.bedrock.max_tokens", 512)

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
}
