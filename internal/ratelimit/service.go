package ratelimit

import (
	"context"
	"fmt"
	"time"

	"gigrilla/internal/clients/redis"
	"gigrilla/internal/metrics"
	"gigrilla/internal/observability"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// fixedWindowScript counts a request only when it is admitted.
// Returns {allowed, remaining, ttl_ms}.
var fixedWindowScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = tonumber(redis.call('GET', key) or '0')
	local ttl = redis.call('PTTL', key)
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		current = redis.call('INCR', key)
		if redis.call('PTTL', key) < 0 then
			redis.call('PEXPIRE', key, window)
		end
		return {1, limit - current, ttl}
	end
	return {0, 0, ttl}
`)

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// Config bounds how many fan updates one user may send per window
type Config struct {
	Limit  int
	Window time.Duration
}

// Service limits fan update sends per user. Counters live in redis so every
// instance shares them.
type Service struct {
	redis   *redis.Client
	limit   int
	window  time.Duration
	metrics *metrics.Metrics
	logger  *observability.Logger
}

// NewService creates a new rate limiting service. A nil or disabled redis client
// admits every request.
func NewService(client *redis.Client, cfg Config, m *metrics.Metrics, logger *observability.Logger) *Service {
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	return &Service{
		redis:   client,
		limit:   cfg.Limit,
		window:  window,
		metrics: m,
		logger:  logger,
	}
}

func key(userID uuid.UUID) string {
	return fmt.Sprintf("ratelimit:%s:fan_updates", userID.String())
}

// CheckRateLimit admits or rejects one request for userID
func (s *Service) CheckRateLimit(ctx context.Context, userID uuid.UUID) (RateLimitResult, error) {
	if s.limit <= 0 || !s.redis.IsEnabled() {
		return RateLimitResult{Allowed: true, Limit: s.limit, Remaining: s.limit, ResetIn: s.window}, nil
	}

	raw, err := s.redis.RunScript(ctx, fixedWindowScript, []string{key(userID)}, s.limit, s.window.Milliseconds())
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) < 3 {
		return RateLimitResult{}, fmt.Errorf("unexpected rate limit result format: %v", raw)
	}
	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	ttlMs, _ := values[2].(int64)

	return RateLimitResult{
		Allowed:   allowed == 1,
		Limit:     s.limit,
		Remaining: int(remaining),
		ResetIn:   time.Duration(ttlMs) * time.Millisecond,
	}, nil
}

// Reset clears the counter for userID
func (s *Service) Reset(ctx context.Context, userID uuid.UUID) error {
	if !s.redis.IsEnabled() {
		return nil
	}
	return s.redis.Del(ctx, key(userID))
}
