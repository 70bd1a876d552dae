package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sentinel/sentinel/internal/infra/logger"
)

// Service counts attempts per key inside a fixed window
type Service interface {
	CheckLimit(ctx context.Context, key string, limit int) (bool, error)
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	Block(ctx context.Context, key string, duration time.Duration, reason string) error
	IsBlocked(ctx context.Context, key string) (bool, error)
	GetAttempts(ctx context.Context, key string) (int, error)
}

// Config configures rate limiting
type Config struct {
	Enabled         bool
	LoginAttempts   int
	AdvisorAttempts int
	Window          time.Duration
	BlockDuration   time.Duration
	KeyPrefix       string
}

type redisService struct {
	client *redis.Client
	prefix string
	logger logger.Logger
}

// NewService returns a Redis-backed limiter, or a no-op limiter when disabled or client is nil
func NewService(config Config, client *redis.Client, log logger.Logger) Service {
	if !config.Enabled || client == nil {
		log.Info(context.Background(), "Rate limiting disabled", nil)
		return NewNoop()
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = "sentinel:ratelimit:"
	}

	log.Info(context.Background(), "Rate limiting service initialized", map[string]interface{}{
		"login_attempts":   config.LoginAttempts,
		"advisor_attempts": config.AdvisorAttempts,
		"window":           config.Window.String(),
		"block_duration":   config.BlockDuration.String(),
	})

	return &redisService{
		client: client,
		prefix: prefix,
		logger: log,
	}
}

// CheckLimit reports whether key is still under limit
func (s *redisService) CheckLimit(ctx context.Context, key string, limit int) (bool, error) {
	current, err := s.GetAttempts(ctx, key)
	if err != nil {
		return false, err
	}

	underLimit := current < limit
	s.logger.Debug(ctx, "Rate limit check", map[string]interface{}{
		"key":         key,
		"current":     current,
		"limit":       limit,
		"under_limit": underLimit,
	})

	return underLimit, nil
}

// Increment bumps the counter of key and (re)arms its window
func (s *redisService) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipeline := s.client.Pipeline()
	incr := pipeline.Incr(ctx, s.prefix+key)
	pipeline.Expire(ctx, s.prefix+key, window)

	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.Error(ctx, "Failed to increment rate limit counter", err, map[string]interface{}{"key": key})
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	return incr.Val(), nil
}

// Block rejects key for duration
func (s *redisService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := s.prefix + "blocked:" + key

	blockData := map[string]interface{}{
		"reason":         reason,
		"blocked_at":     time.Now().Unix(),
		"duration":       duration.Seconds(),
		"correlation_id": logger.CorrelationIDFromContext(ctx),
	}

	pipeline := s.client.Pipeline()
	pipeline.HSet(ctx, blockKey, blockData)
	pipeline.Expire(ctx, blockKey, duration)

	if _, err := pipeline.Exec(ctx); err != nil {
		s.logger.Error(ctx, "Failed to block key", err, map[string]interface{}{"key": key})
		return fmt.Errorf("failed to block key: %w", err)
	}

	s.logger.Warn(ctx, "Key blocked due to rate limit exceeded", map[string]interface{}{
		"key":      key,
		"duration": duration.String(),
		"reason":   reason,
	})
	return nil
}

// IsBlocked reports whether key is currently blocked
func (s *redisService) IsBlocked(ctx context.Context, key string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.prefix+"blocked:"+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return exists > 0, nil
}

// GetAttempts returns the attempts recorded for key in the current window
func (s *redisService) GetAttempts(ctx context.Context, key string) (int, error) {
	count, err := s.client.Get(ctx, s.prefix+key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get attempts: %w", err)
	}
	return count, nil
}

type noopService struct{}

// NewNoop returns a limiter that allows everything
func NewNoop() Service {
	return noopService{}
}

func (noopService) CheckLimit(ctx context.Context, key string, limit int) (bool, error) {
	return true, nil
}

func (noopService) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, nil
}

func (noopService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return nil
}

func (noopService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (noopService) GetAttempts(ctx context.Context, key string) (int, error) {
	return 0, nil
}
