package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gigrilla/internal/fancomms/processor"
	"gigrilla/internal/observability"
	"gigrilla/internal/workers"

	"github.com/google/uuid"
)

const processorName = "fan_comms_sweep"

// SweepProcessor is the part of the fan comms processor the scheduler drives
type SweepProcessor interface {
	DueArtists(ctx context.Context) ([]uuid.UUID, error)
	SweepArtist(ctx context.Context, artistID uuid.UUID) (processor.SweepReport, error)
}

// Config controls the sweep cadence and parallelism
type Config struct {
	Interval time.Duration
	Workers  int
}

// Scheduler periodically finds artists with due fan updates and sweeps each one
// on a worker pool. An artist is never queued twice, so one artist's gigs are
// only swept by a single worker at a time.
type Scheduler struct {
	sweeper  SweepProcessor
	pool     workers.WorkerPool
	logger   *observability.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
	seq      int
}

// NewScheduler creates a new sweep scheduler
func NewScheduler(sweeper SweepProcessor, cfg Config, logger *observability.Logger) *Scheduler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	s := &Scheduler{
		sweeper:  sweeper,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
		inFlight: make(map[uuid.UUID]struct{}),
	}
	s.pool = workers.NewWorkerPool(workers.WorkerPoolConfig{
		NumWorkers: cfg.Workers,
		OnResult:   s.release,
	}, s, logger)
	return s
}

// Start begins the scheduler loop. It blocks until ctx is cancelled or Stop is called,
// then drains in-flight sweeps. Workers outlive ctx until the drain timeout.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.pool.Start(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("failed to start sweep workers: %w", err)
	}

	s.logger.Info(ctx, fmt.Sprintf("Starting fan comms sweep scheduler with %v interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.enqueueDue(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Sweep scheduler stopping: context cancelled")
			return s.drain()
		case <-s.stopChan:
			s.logger.Info(ctx, "Sweep scheduler stopping: stop signal received")
			return s.drain()
		case <-ticker.C:
			s.enqueueDue(ctx)
		}
	}
}

// Stop signals the scheduler to stop
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *Scheduler) drain() error {
	return s.pool.Drain(context.Background())
}

// enqueueDue submits one task per due artist that is not already queued
func (s *Scheduler) enqueueDue(ctx context.Context) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "operation", Value: "enqueue_due_sweeps"},
	)

	artists, err := s.sweeper.DueArtists(ctx)
	if err != nil {
		s.logger.Error(ctx, "Failed to list artists with scheduled fan updates", err)
		return
	}
	if len(artists) == 0 {
		return
	}

	queued := 0
	for _, artistID := range artists {
		task, ok := s.claim(artistID)
		if !ok {
			continue
		}
		if err := s.pool.Submit(ctx, task); err != nil {
			s.release(workers.ProcessingResult{Task: task})
			s.logger.Error(observability.WithFields(ctx,
				observability.Field{Key: "artist_id", Value: artistID.String()},
			), "Failed to queue artist sweep", err)
			continue
		}
		queued++
	}

	s.logger.Info(ctx, fmt.Sprintf("Queued %d of %d due artist sweeps", queued, len(artists)))
}

func (s *Scheduler) claim(artistID uuid.UUID) (workers.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[artistID]; busy {
		return workers.Task{}, false
	}
	s.inFlight[artistID] = struct{}{}
	s.seq++
	return workers.Task{
		ID:       fmt.Sprintf("sweep-%d", s.seq),
		ArtistID: artistID,
	}, true
}

func (s *Scheduler) release(result workers.ProcessingResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, result.Task.ArtistID)
}

// Process sweeps one artist's gigs
func (s *Scheduler) Process(ctx context.Context, task workers.Task) error {
	report, err := s.sweeper.SweepArtist(ctx, task.ArtistID)
	if report.GigsUpdated > 0 {
		s.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "gigs_updated", Value: report.GigsUpdated},
			observability.Field{Key: "entries_sent", Value: report.EntriesSent},
			observability.Field{Key: "entries_failed", Value: report.EntriesFailed},
		), "Swept scheduled fan updates")
	}
	return err
}

func (s *Scheduler) Name() string {
	return processorName
}
