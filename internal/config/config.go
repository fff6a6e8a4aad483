package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Auth       AuthConfig
	Services   ServicesConfig
	Redis      RedisConfig
	FanComms   FanCommsConfig
	WorkerPool WorkerPoolConfig
	Server     ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// ServicesConfig holds external service configuration
type ServicesConfig struct {
	WebAppURI string
}

// RedisConfig holds redis connection settings. Redis backs the shared rate limiter.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// FanCommsConfig holds fan update dispatch settings
type FanCommsConfig struct {
	Timezone              *time.Location
	SweepInterval         time.Duration
	NotificationBatchSize int
	RateLimit             int
	RateWindow            time.Duration
}

// WorkerPoolConfig holds worker pool configuration for the scheduled sweep
type WorkerPoolConfig struct {
	SweepWorkers int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	cfg.Services.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")

	// Redis configuration
	if cfg.Redis.Enabled, err = strconv.ParseBool(getEnvWithDefault("REDIS_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_ENABLED: %w", err)
	}
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.Port, err = strconv.Atoi(getEnvWithDefault("REDIS_PORT", "6379")); err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_PORT: %w", err)
	}
	if cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}

	// Fan comms configuration
	if cfg.FanComms.Timezone, err = time.LoadLocation(getEnvWithDefault("FAN_COMMS_TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("failed to parse FAN_COMMS_TIMEZONE: %w", err)
	}
	if cfg.FanComms.SweepInterval, err = time.ParseDuration(getEnvWithDefault("FAN_COMMS_SWEEP_INTERVAL", "1m")); err != nil {
		return nil, fmt.Errorf("failed to parse FAN_COMMS_SWEEP_INTERVAL: %w", err)
	}
	if cfg.FanComms.NotificationBatchSize, err = strconv.Atoi(getEnvWithDefault("FAN_COMMS_NOTIFICATION_BATCH_SIZE", "500")); err != nil {
		return nil, fmt.Errorf("failed to parse FAN_COMMS_NOTIFICATION_BATCH_SIZE: %w", err)
	}
	if cfg.FanComms.RateLimit, err = strconv.Atoi(getEnvWithDefault("FAN_COMMS_RATE_LIMIT", "10")); err != nil {
		return nil, fmt.Errorf("failed to parse FAN_COMMS_RATE_LIMIT: %w", err)
	}
	if cfg.FanComms.RateWindow, err = time.ParseDuration(getEnvWithDefault("FAN_COMMS_RATE_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("failed to parse FAN_COMMS_RATE_WINDOW: %w", err)
	}

	// Worker pool configuration
	if cfg.WorkerPool.SweepWorkers, err = strconv.Atoi(getEnvWithDefault("SWEEP_WORKERS", "4")); err != nil {
		return nil, fmt.Errorf("failed to parse SWEEP_WORKERS: %w", err)
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
