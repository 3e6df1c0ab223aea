package models

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Configuration
//
// Values come from three layers, later layers winning:
//   1. defaults below
//   2. an optional TOML file (--config / GOFLIX_CONFIG)
//   3. GOFLIX_* environment variables
// ============================================================================

// Cache backends accepted in Config.CacheBackend
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheDuckDB = "duckdb"
)

const (
	DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

	// devSessionSecret is only acceptable outside production; it satisfies
	// the length check so a fresh checkout runs without extra setup.
	devSessionSecret = "development-only-session-secret-change-me"

	// MinSecretLength is the minimum acceptable length for the session secret
	MinSecretLength = 32
)

// Config holds everything the server and the browse mode need.
type Config struct {
	Address          string        `toml:"address"`
	TMDBBaseURL      string        `toml:"tmdb_base_url"`
	TMDBAPIKey       string        `toml:"tmdb_api_key"`
	ImageBaseURL     string        `toml:"image_base_url"`
	Language         string        `toml:"language"`
	RequestTimeout   time.Duration `toml:"request_timeout"`
	RateLimit        float64       `toml:"rate_limit"`
	FetchConcurrency int           `toml:"fetch_concurrency"`

	CacheBackend  string        `toml:"cache_backend"`
	CacheTTL      time.Duration `toml:"cache_ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	DuckDBPath    string        `toml:"duckdb_path"`

	SessionSecret  string        `toml:"session_secret"`
	SessionIdleTTL time.Duration `toml:"session_idle_ttl"`

	// TrustProxy honors X-Forwarded-For and X-Real-IP. Enable only behind
	// a proxy that sets them.
	TrustProxy bool `toml:"trust_proxy"`

	MetricsAddr string `toml:"metrics_addr"`
	LogLevel    string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Address:          ":8000",
		TMDBBaseURL:      DefaultTMDBBaseURL,
		ImageBaseURL:     DefaultImageBaseURL,
		Language:         "en-US",
		RequestTimeout:   10 * time.Second,
		RateLimit:        20,
		FetchConcurrency: 4,
		CacheBackend:     CacheMemory,
		CacheTTL:         10 * time.Minute,
		RedisAddr:        "localhost:6379",
		SessionSecret:    devSessionSecret,
		SessionIdleTTL:   30 * time.Minute,
		LogLevel:         "info",
	}
}

// LoadConfig builds the configuration from defaults, the TOML file at path
// (skipped when path is empty) and the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, serr.Wrap(err, "failed to read config file")
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, serr.Wrap(err, "failed to parse config file")
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from GOFLIX_* variables that are set.
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"GOFLIX_ADDRESS":        &c.Address,
		"GOFLIX_TMDB_BASE_URL":  &c.TMDBBaseURL,
		"GOFLIX_TMDB_API_KEY":   &c.TMDBAPIKey,
		"GOFLIX_IMAGE_BASE_URL": &c.ImageBaseURL,
		"GOFLIX_LANGUAGE":       &c.Language,
		"GOFLIX_CACHE_BACKEND":  &c.CacheBackend,
		"GOFLIX_REDIS_ADDR":     &c.RedisAddr,
		"GOFLIX_REDIS_PASSWORD": &c.RedisPassword,
		"GOFLIX_DUCKDB_PATH":    &c.DuckDBPath,
		"GOFLIX_SESSION_SECRET": &c.SessionSecret,
		"GOFLIX_METRICS_ADDR":   &c.MetricsAddr,
		"GOFLIX_LOG_LEVEL":      &c.LogLevel,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(name); ok {
			*field = v
		}
	}

	durations := map[string]*time.Duration{
		"GOFLIX_REQUEST_TIMEOUT":  &c.RequestTimeout,
		"GOFLIX_CACHE_TTL":        &c.CacheTTL,
		"GOFLIX_SESSION_IDLE_TTL": &c.SessionIdleTTL,
	}
	for name, field := range durations {
		if v := os.Getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return serr.Wrap(err, "invalid "+name+" value, expected duration like '10s'")
			}
			*field = d
		}
	}

	ints := map[string]*int{
		"GOFLIX_FETCH_CONCURRENCY": &c.FetchConcurrency,
		"GOFLIX_REDIS_DB":          &c.RedisDB,
	}
	for name, field := range ints {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return serr.Wrap(err, "invalid "+name+" value, expected integer")
			}
			*field = n
		}
	}

	if v := os.Getenv("GOFLIX_TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return serr.Wrap(err, "invalid GOFLIX_TRUST_PROXY value, expected true or false")
		}
		c.TrustProxy = b
	}

	if v := os.Getenv("GOFLIX_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return serr.Wrap(err, "invalid GOFLIX_RATE_LIMIT value, expected requests per second")
		}
		c.RateLimit = f
	}

	return nil
}

// Validate checks the configuration before anything is started.
func (c *Config) Validate() error {
	if c.TMDBAPIKey == "" {
		return serr.New("GOFLIX_TMDB_API_KEY is required")
	}
	if c.TMDBBaseURL == "" {
		return serr.New("tmdb base url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return serr.New("request timeout must be positive")
	}
	if c.RateLimit <= 0 {
		return serr.New("rate limit must be positive")
	}
	if c.FetchConcurrency < 1 {
		return serr.New("fetch concurrency must be at least 1")
	}
	if len(c.SessionSecret) < MinSecretLength {
		return serr.New("session secret must be at least 32 characters")
	}
	if c.SessionIdleTTL < time.Minute {
		return serr.New("session idle ttl must be at least 1m")
	}

	switch c.CacheBackend {
	case CacheNone, CacheMemory, CacheDuckDB:
	case CacheRedis:
		if c.RedisAddr == "" {
			return serr.New("GOFLIX_REDIS_ADDR is required for the redis cache backend")
		}
	default:
		return serr.New("unknown cache backend: " + c.CacheBackend)
	}

	return nil
}
