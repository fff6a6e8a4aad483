// fancommsctl holds operator commands for the fan comms service.
//
//	fancommsctl token -user <uuid> [-ttl 1h]   print a signed API token for user
//	fancommsctl reset-limit -user <uuid>       clear the user's fan update rate limit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	authProcessor "gigrilla/internal/auth/processor"
	"gigrilla/internal/clients/redis"
	"gigrilla/internal/config"
	"gigrilla/internal/observability"
	"gigrilla/internal/ratelimit"

	"github.com/google/uuid"
)

var errUsage = errors.New("usage: fancommsctl <token|reset-limit> -user <uuid> [flags]")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	logger := observability.NewLogger()
	defer logger.Sync()

	if err := run(context.Background(), os.Args[1:], cfg, logger, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, cfg *config.Config, logger *observability.Logger, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	switch args[0] {
	case "token":
		return issueToken(ctx, args[1:], cfg, logger, out)
	case "reset-limit":
		return resetLimit(ctx, args[1:], cfg, logger, out)
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

func issueToken(ctx context.Context, args []string, cfg *config.Config, logger *observability.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(out)
	user := fs.String("user", "", "user id the token is issued for")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	userID, err := uuid.Parse(*user)
	if err != nil {
		return fmt.Errorf("invalid -user %q: %w", *user, err)
	}
	if *ttl <= 0 {
		return fmt.Errorf("-ttl must be positive, got %s", *ttl)
	}

	auth := authProcessor.New(authProcessor.AuthConfig{JWTSecret: cfg.Auth.JWTSecret}, logger)
	token, err := auth.GenerateJWTToken(ctx, userID, *ttl)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}

func resetLimit(ctx context.Context, args []string, cfg *config.Config, logger *observability.Logger, out io.Writer) error {
	fs := flag.NewFlagSet("reset-limit", flag.ContinueOnError)
	fs.SetOutput(out)
	user := fs.String("user", "", "user id whose send window is cleared")
	if err := fs.Parse(args); err != nil {
		return err
	}

	userID, err := uuid.Parse(*user)
	if err != nil {
		return fmt.Errorf("invalid -user %q: %w", *user, err)
	}

	client, err := redis.NewClient(cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer client.Close()

	if !client.IsEnabled() {
		_, err = fmt.Fprintln(out, "redis is disabled, nothing to reset")
		return err
	}

	limiter := ratelimit.NewService(client, ratelimit.Config{
		Limit:  cfg.FanComms.RateLimit,
		Window: cfg.FanComms.RateWindow,
	}, nil, logger)
	if err := limiter.Reset(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}

	_, err = fmt.Fprintf(out, "rate limit reset for %s\n", userID)
	return err
}
