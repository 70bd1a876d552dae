package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"SERVER_HOST", "SERVER_PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT",
	"SESSION_BACKEND", "SESSION_KEY", "SESSION_CODEC", "SESSION_SECRET", "SESSION_TTL",
	"REDIS_URL", "DATABASE_URL", "AI_PROVIDER", "OPENAI_API_KEY", "AI_MODEL", "AI_BASE_URL",
	"AI_TIMEOUT_MS", "AI_MAX_TOKENS", "LOGIN_DELAY", "SEED_DEMO_DATA", "CORS_ENABLED",
	"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_ENABLED", "RATE_LIMIT_LOGIN_ATTEMPTS",
	"RATE_LIMIT_ADVISOR_ATTEMPTS", "RATE_LIMIT_WINDOW", "RATE_LIMIT_BLOCK_DURATION",
	"EVENTS_BUFFER_SIZE", "EVENTS_HEARTBEAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, SessionCodecJSON, cfg.SessionCodec)
	assert.Equal(t, "sentinel_user", cfg.SessionKey)
	assert.Equal(t, "mock", cfg.AIProvider)
	assert.Equal(t, 1500*time.Millisecond, cfg.LoginDelay)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 64, cfg.EventsBufferSize)
	assert.Equal(t, 15*time.Second, cfg.EventsHeartbeat)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("SESSION_CODEC", "jwt")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AI_MODEL", "gpt-4o")
	t.Setenv("LOGIN_DELAY", "250ms")
	t.Setenv("RATE_LIMIT_WINDOW", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("RATE_LIMIT_LOGIN_ATTEMPTS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.LoginDelay)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10, cfg.RateLimitLoginAttempts)

	advisor := cfg.AdvisorConfig()
	assert.Equal(t, "openai", advisor.Provider)
	assert.Equal(t, "sk-test", advisor.APIKey)
	assert.Equal(t, "gpt-4o", advisor.Model)
}

func TestLoad_InvalidCombinations(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectedErr error
	}{
		{"unknown backend", map[string]string{"SESSION_BACKEND": "etcd"}, ErrInvalidSessionBackend},
		{"postgres without url", map[string]string{"SESSION_BACKEND": "postgres"}, ErrMissingDatabaseURL},
		{"redis without url", map[string]string{"SESSION_BACKEND": "redis"}, ErrMissingRedisURL},
		{"jwt without secret", map[string]string{"SESSION_CODEC": "jwt"}, ErrMissingSessionSecret},
		{"unknown codec", map[string]string{"SESSION_CODEC": "gob"}, ErrInvalidSessionCodec},
		{"unknown provider", map[string]string{"AI_PROVIDER": "llama"}, ErrInvalidAIProvider},
		{"openai without key", map[string]string{"AI_PROVIDER": "openai"}, ErrMissingOpenAIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestRateLimitConfig(t *testing.T) {
	cfg := &Config{
		RateLimitEnabled:         true,
		RateLimitLoginAttempts:   3,
		RateLimitAdvisorAttempts: 7,
		RateLimitWindow:          time.Minute,
		RateLimitBlockDuration:   time.Hour,
	}

	rl := cfg.RateLimitConfig()
	assert.True(t, rl.Enabled)
	assert.Equal(t, 3, rl.LoginAttempts)
	assert.Equal(t, 7, rl.AdvisorAttempts)
	assert.Equal(t, time.Hour, rl.BlockDuration)
}

func TestConfig_Warnings(t *testing.T) {
	t.Run("development is silent", func(t *testing.T) {
		cfg := &Config{Environment: "development", SeedDemoData: true, SessionBackend: SessionBackendMemory}
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("production flags unsafe defaults", func(t *testing.T) {
		cfg := &Config{
			Environment:        "production",
			SeedDemoData:       true,
			SessionBackend:     SessionBackendMemory,
			CORSEnabled:        true,
			CORSAllowedOrigins: []string{"https://ops.example", "*"},
		}
		require.True(t, cfg.IsProduction())
		assert.Equal(t, []string{
			"demo data is seeded in production",
			"session identity is not persisted across restarts",
			"CORS allows every origin",
		}, cfg.Warnings())
	})

	t.Run("production with hardened settings", func(t *testing.T) {
		cfg := &Config{
			Environment:        "production",
			SessionBackend:     SessionBackendRedis,
			CORSEnabled:        true,
			CORSAllowedOrigins: []string{"https://ops.example"},
		}
		assert.Empty(t, cfg.Warnings())
	})
}
