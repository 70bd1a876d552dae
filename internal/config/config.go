package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sentinel/sentinel/internal/infra/ratelimit"
	"github.com/sentinel/sentinel/internal/ports"
)

// Session storage backends
const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// Session codecs
const (
	SessionCodecJSON = "json"
	SessionCodecJWT  = "jwt"
)

type Config struct {
	ServerHost         string
	ServerPort         string
	Environment        string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	ShutdownTimeout    time.Duration

	LogLevel  string
	LogFormat string

	SessionBackend string
	SessionKey     string
	SessionCodec   string
	SessionSecret  string
	SessionTTL     time.Duration
	RedisURL       string
	DatabaseURL    string

	AIProvider   string
	OpenAIAPIKey string
	AIModel      string
	AIBaseURL    string
	AITimeoutMs  int
	AIMaxTokens  int

	LoginDelay   time.Duration
	SeedDemoData bool

	EventsBufferSize int
	EventsHeartbeat  time.Duration

	CORSEnabled        bool
	CORSAllowedOrigins []string

	RateLimitEnabled         bool
	RateLimitLoginAttempts   int
	RateLimitAdvisorAttempts int
	RateLimitWindow          time.Duration
	RateLimitBlockDuration   time.Duration
}

var (
	ErrMissingDatabaseURL    = errors.New("DATABASE_URL is required when SESSION_BACKEND=postgres")
	ErrMissingRedisURL       = errors.New("REDIS_URL is required when SESSION_BACKEND=redis")
	ErrMissingSessionSecret  = errors.New("SESSION_SECRET is required when SESSION_CODEC=jwt")
	ErrInvalidSessionBackend = errors.New("SESSION_BACKEND must be one of: memory, redis, postgres")
	ErrInvalidSessionCodec   = errors.New("SESSION_CODEC must be one of: json, jwt")
	ErrInvalidAIProvider     = errors.New("AI_PROVIDER must be one of: mock, openai")
	ErrMissingOpenAIKey      = errors.New("OPENAI_API_KEY is required when AI_PROVIDER=openai")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:        getEnvOrDefault("ENV", "development"),
		ServerReadTimeout:  getEnvOrDefaultDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getEnvOrDefaultDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getEnvOrDefaultDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:    getEnvOrDefaultDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		SessionBackend: strings.ToLower(getEnvOrDefault("SESSION_BACKEND", SessionBackendMemory)),
		SessionKey:     getEnvOrDefault("SESSION_KEY", "sentinel_user"),
		SessionCodec:   strings.ToLower(getEnvOrDefault("SESSION_CODEC", SessionCodecJSON)),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionTTL:     getEnvOrDefaultDuration("SESSION_TTL", 24*time.Hour),
		RedisURL:       os.Getenv("REDIS_URL"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		AIProvider:   strings.ToLower(getEnvOrDefault("AI_PROVIDER", "mock")),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		AIModel:      os.Getenv("AI_MODEL"),
		AIBaseURL:    os.Getenv("AI_BASE_URL"),
		AITimeoutMs:  getEnvOrDefaultInt("AI_TIMEOUT_MS", 15000),
		AIMaxTokens:  getEnvOrDefaultInt("AI_MAX_TOKENS", 400),

		LoginDelay:   getEnvOrDefaultDuration("LOGIN_DELAY", 1500*time.Millisecond),
		SeedDemoData: getEnvOrDefaultBool("SEED_DEMO_DATA", true),

		EventsBufferSize: getEnvOrDefaultInt("EVENTS_BUFFER_SIZE", 64),
		EventsHeartbeat:  getEnvOrDefaultDuration("EVENTS_HEARTBEAT", 15*time.Second),

		CORSEnabled:        getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowedOrigins: parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		RateLimitEnabled:         getEnvOrDefaultBool("RATE_LIMIT_ENABLED", false),
		RateLimitLoginAttempts:   getEnvOrDefaultInt("RATE_LIMIT_LOGIN_ATTEMPTS", 10),
		RateLimitAdvisorAttempts: getEnvOrDefaultInt("RATE_LIMIT_ADVISOR_ATTEMPTS", 20),
		RateLimitWindow:          getEnvOrDefaultDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitBlockDuration:   getEnvOrDefaultDuration("RATE_LIMIT_BLOCK_DURATION", 5*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks option combinations
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			return ErrMissingRedisURL
		}
	case SessionBackendPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return ErrInvalidSessionBackend
	}

	switch c.SessionCodec {
	case SessionCodecJSON:
	case SessionCodecJWT:
		if c.SessionSecret == "" {
			return ErrMissingSessionSecret
		}
	default:
		return ErrInvalidSessionCodec
	}

	switch c.AIProvider {
	case "mock":
	case "openai":
		if c.OpenAIAPIKey == "" {
			return ErrMissingOpenAIKey
		}
	default:
		return ErrInvalidAIProvider
	}

	return nil
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Warnings lists settings that are unsafe outside development
func (c *Config) Warnings() []string {
	if !c.IsProduction() {
		return nil
	}

	var warnings []string
	if c.SeedDemoData {
		warnings = append(warnings, "demo data is seeded in production")
	}
	if c.SessionBackend == SessionBackendMemory {
		warnings = append(warnings, "session identity is not persisted across restarts")
	}
	if c.CORSEnabled {
		for _, origin := range c.CORSAllowedOrigins {
			if origin == "*" {
				warnings = append(warnings, "CORS allows every origin")
				break
			}
		}
	}
	return warnings
}

// AdvisorConfig converts to ports.AdvisorConfig
func (c *Config) AdvisorConfig() ports.AdvisorConfig {
	return ports.AdvisorConfig{
		Provider:  c.AIProvider,
		APIKey:    c.OpenAIAPIKey,
		BaseURL:   c.AIBaseURL,
		Model:     c.AIModel,
		TimeoutMs: c.AITimeoutMs,
		MaxTokens: c.AIMaxTokens,
	}
}

// RateLimitConfig converts to ratelimit.Config
func (c *Config) RateLimitConfig() ratelimit.Config {
	return ratelimit.Config{
		Enabled:         c.RateLimitEnabled,
		LoginAttempts:   c.RateLimitLoginAttempts,
		AdvisorAttempts: c.RateLimitAdvisorAttempts,
		Window:          c.RateLimitWindow,
		BlockDuration:   c.RateLimitBlockDuration,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

// getEnvOrDefaultDuration reads a Go duration ("1500ms") or a bare number of seconds
func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return d
	}
	return defaultValue
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}
