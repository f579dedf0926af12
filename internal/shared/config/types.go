package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	Version        string        `mapstructure:"version"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	TrustedProxies []string      `mapstructure:"trusted_proxies"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsDebug reports whether the server runs in gin debug/development mode.
func (s *ServerConfig) IsDebug() bool {
	return s.Mode == "debug" || s.Mode == "development"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RateLimitConfig configures per-client admission control.
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Backend       string        `mapstructure:"backend"` // memory | redis
	Window        time.Duration `mapstructure:"window"`
	MaxRequests   int           `mapstructure:"max_requests"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	ExemptPaths   []string      `mapstructure:"exempt_paths"`
}

type ModerationConfig struct {
	DefaultThreshold float64            `mapstructure:"default_threshold"`
	Thresholds       map[string]float64 `mapstructure:"thresholds"`
	TextCategories   []string           `mapstructure:"text_categories"`
	ImageCategories  []string           `mapstructure:"image_categories"`
	ScoringTimeout   time.Duration      `mapstructure:"scoring_timeout"`
	TextMinLength    int                `mapstructure:"text_min_length"`
	TextMaxLength    int                `mapstructure:"text_max_length"`
}

type UploadConfig struct {
	MaxSize           int64    `mapstructure:"max_size"`
	AllowedTypes      []string `mapstructure:"allowed_types"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

type HTTPScorerConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RetryMax          int           `mapstructure:"retry_max"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

type BedrockScorerConfig struct {
	Region    string `mapstructure:"region"`
	ModelID   string `mapstructure:"model_id"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type LexiconScorerConfig struct {
	Path string `mapstructure:"path"`
}

// ScorerConfig selects a scoring backend per content kind.
// Supported kinds: lexicon, http, bedrock, none.
type ScorerConfig struct {
	Text      string              `mapstructure:"text"`
	Image     string              `mapstructure:"image"`
	CacheSize int                 `mapstructure:"cache_size"`
	CacheTTL  time.Duration       `mapstructure:"cache_ttl"`
	HTTP      HTTPScorerConfig    `mapstructure:"http"`
	Bedrock   BedrockScorerConfig `mapstructure:"bedrock"`
	Lexicon   LexiconScorerConfig `mapstructure:"lexicon"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}
