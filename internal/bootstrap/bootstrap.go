package bootstrap

import (
	"context"
	"fmt"
	"time"

	authHandler "gigrilla/internal/auth/handler"
	authProcessor "gigrilla/internal/auth/processor"
	"gigrilla/internal/clients/redis"
	"gigrilla/internal/config"
	fanCommsHandler "gigrilla/internal/fancomms/handler"
	fanCommsProcessor "gigrilla/internal/fancomms/processor"
	"gigrilla/internal/metrics"
	"gigrilla/internal/observability"
	"gigrilla/internal/ratelimit"
	"gigrilla/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store    store.Store
	Logger   *observability.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// Processors
	FanCommsProcessor fanCommsProcessor.FanCommsProcessor

	// Handlers
	AuthHandler     authHandler.Handler
	FanCommsHandler fanCommsHandler.Handler

	// Middleware
	RateLimiter *ratelimit.Service

	// Redis client (for cleanup)
	Redis *redis.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.New(deps.Registry)

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := deps.Store.Ping(pingCtx); err != nil {
		_ = deps.Store.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Initialize redis (optional)
	deps.Redis, err = redis.NewClient(cfg.Redis, logger)
	if err != nil {
		_ = deps.Store.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Initialize fan comms processor and handler
	deps.FanCommsProcessor = fanCommsProcessor.New(&deps.Store, deps.Metrics, fanCommsProcessor.Config{
		Location:              cfg.FanComms.Timezone,
		NotificationBatchSize: cfg.FanComms.NotificationBatchSize,
	}, logger)
	deps.FanCommsHandler = fanCommsHandler.New(&deps.FanCommsProcessor, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.New(authProcessor.AuthConfig{JWTSecret: cfg.Auth.JWTSecret}, logger)
	deps.AuthHandler = authHandler.New(authProc, logger)

	// Initialize rate limiter for fan update sends
	deps.RateLimiter = ratelimit.NewService(deps.Redis, ratelimit.Config{
		Limit:  cfg.FanComms.RateLimit,
		Window: cfg.FanComms.RateWindow,
	}, deps.Metrics, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
	_ = d.Store.Close()
}
