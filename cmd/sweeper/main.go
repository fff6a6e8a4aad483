package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"gigrilla/internal/config"
	"gigrilla/internal/fancomms/processor"
	"gigrilla/internal/metrics"
	"gigrilla/internal/observability"
	"gigrilla/internal/store"
	"gigrilla/internal/workers/sweep"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exiting
func run() int {
	once := flag.Bool("once", false, "run a single sweep pass and exit")
	metricsAddr := flag.String("metrics-addr", "", "address to serve /metrics on, e.g. :9102 (disabled when empty)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load configuration: %s", err)
		return 1
	}

	logger := observability.NewLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = observability.WithFields(ctx, observability.Field{Key: "component", Value: "sweeper"})

	dataStore, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		logger.Error(ctx, "failed to initialize store", err)
		return 1
	}
	defer dataStore.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	fanComms := processor.New(&dataStore, m, processor.Config{
		Location:              cfg.FanComms.Timezone,
		NotificationBatchSize: cfg.FanComms.NotificationBatchSize,
	}, logger)

	if *once {
		return sweepOnce(ctx, &fanComms, logger)
	}

	if *metricsAddr != "" {
		metricsServer := &http.Server{
			Addr:              *metricsAddr,
			Handler:           metrics.Handler(registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info(ctx, fmt.Sprintf("Serving sweeper metrics on %s", *metricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "metrics server failed", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	scheduler := sweep.NewScheduler(&fanComms, sweep.Config{
		Interval: cfg.FanComms.SweepInterval,
		Workers:  cfg.WorkerPool.SweepWorkers,
	}, logger)

	if err := scheduler.Start(ctx); err != nil {
		logger.Error(ctx, "sweep scheduler stopped with error", err)
		return 1
	}
	logger.Info(ctx, "Sweeper exited gracefully")
	return 0
}

type dueSweeper interface {
	SweepDue(ctx context.Context) (processor.SweepReport, error)
}

// sweepOnce runs a single pass over every due artist and returns the exit code
func sweepOnce(ctx context.Context, sweeper dueSweeper, logger *observability.Logger) int {
	report, err := sweeper.SweepDue(ctx)
	logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "gigs_scanned", Value: report.GigsScanned},
		observability.Field{Key: "gigs_updated", Value: report.GigsUpdated},
		observability.Field{Key: "entries_sent", Value: report.EntriesSent},
		observability.Field{Key: "entries_failed", Value: report.EntriesFailed},
	), "Sweep pass finished")
	if err != nil {
		logger.Error(ctx, "sweep pass finished with errors", err)
		return 1
	}
	return 0
}
