package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gigrilla/internal/observability"
)

var (
	ErrPoolNotStarted   = errors.New("worker pool not started")
	ErrPoolShuttingDown = errors.New("worker pool is shutting down")
	ErrDrainTimeout     = errors.New("drain timeout exceeded")
)

// ProcessingResult represents the result of processing a task.
type ProcessingResult struct {
	Task  Task
	Error error
}

// ResultCallback is called after each task is processed.
type ResultCallback func(result ProcessingResult)

// WorkerPoolConfig holds configuration for the worker pool.
type WorkerPoolConfig struct {
	// NumWorkers is the number of concurrent workers to run.
	NumWorkers int

	// QueueSize is the size of the task queue buffer.
	// If the queue is full, Submit() will block.
	QueueSize int

	// DrainTimeout is the maximum time to wait for in-flight tasks
	// to complete during graceful shutdown.
	DrainTimeout time.Duration

	// OnResult is called after each task is processed (optional).
	OnResult ResultCallback
}

// DefaultWorkerPoolConfig returns the defaults for a worker pool.
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		NumWorkers:   4,
		QueueSize:    100,
		DrainTimeout: 30 * time.Second,
	}
}

// pool implements the WorkerPool interface.
type pool struct {
	config    WorkerPoolConfig
	processor TaskProcessor
	logger    *observability.Logger

	taskChan chan Task
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu       sync.RWMutex
	started  bool
	draining bool
	stopped  bool
	cancelFn context.CancelFunc
}

// NewWorkerPool creates a new worker pool for processing tasks.
func NewWorkerPool(
	config WorkerPoolConfig,
	processor TaskProcessor,
	logger *observability.Logger,
) WorkerPool {
	defaults := DefaultWorkerPoolConfig()
	if config.NumWorkers <= 0 {
		config.NumWorkers = defaults.NumWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.DrainTimeout <= 0 {
		config.DrainTimeout = defaults.DrainTimeout
	}

	return &pool{
		config:    config,
		processor: processor,
		logger:    logger,
		taskChan:  make(chan Task, config.QueueSize),
		stopCh:    make(chan struct{}),
	}
}

// Start initializes the worker pool with N workers.
func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}
	if p.stopped {
		return fmt.Errorf("worker pool already stopped")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	p.cancelFn = cancel
	p.started = true

	for i := 0; i < p.config.NumWorkers; i++ {
		p.wg.Add(1)
		go p.worker(workerCtx, i)
	}

	p.logger.Info(ctx, fmt.Sprintf("Started %d workers for %s processor",
		p.config.NumWorkers, p.processor.Name()))

	return nil
}

// Submit adds a task to the worker pool for processing.
func (p *pool) Submit(ctx context.Context, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started {
		return ErrPoolNotStarted
	}
	if p.draining || p.stopped {
		return ErrPoolShuttingDown
	}

	select {
	case p.taskChan <- task:
		return nil
	case <-p.stopCh:
		return ErrPoolShuttingDown
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain stops accepting new tasks and waits for queued and in-flight tasks to complete.
func (p *pool) Drain(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return ErrPoolNotStarted
	}
	if p.draining || p.stopped {
		p.mu.Unlock()
		return ErrPoolShuttingDown
	}
	p.draining = true
	close(p.taskChan)
	p.mu.Unlock()

	p.logger.Info(ctx, fmt.Sprintf("Draining worker pool for %s processor, %d tasks queued",
		p.processor.Name(), len(p.taskChan)))

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	drainCtx, cancel := context.WithTimeout(ctx, p.config.DrainTimeout)
	defer cancel()

	select {
	case <-done:
		p.logger.Info(ctx, fmt.Sprintf("Successfully drained worker pool for %s processor",
			p.processor.Name()))
		return nil
	case <-drainCtx.Done():
		p.logger.Warn(ctx, fmt.Sprintf("Drain timeout exceeded for %s processor, forcing shutdown",
			p.processor.Name()))
		p.Stop()
		return ErrDrainTimeout
	}
}

// Stop immediately stops all workers. Tasks still queued are dropped.
func (p *pool) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true

	if p.cancelFn != nil {
		p.cancelFn()
	}
}

// worker is the main worker loop that processes tasks from the queue.
func (p *pool) worker(ctx context.Context, workerID int) {
	defer p.wg.Done()

	workerCtx := observability.WithFields(ctx,
		observability.Field{Key: "worker_id", Value: workerID},
		observability.Field{Key: "processor", Value: p.processor.Name()},
	)

	for {
		select {
		case <-ctx.Done():
			return

		case task, ok := <-p.taskChan:
			if !ok {
				return
			}

			taskCtx := observability.WithFields(workerCtx,
				observability.Field{Key: "task_id", Value: task.ID},
				observability.Field{Key: "artist_id", Value: task.ArtistID.String()},
			)

			err := p.processor.Process(taskCtx, task)
			if err != nil {
				p.logger.Error(taskCtx, fmt.Sprintf("Worker %d failed to process task", workerID), err)
			}

			if p.config.OnResult != nil {
				p.config.OnResult(ProcessingResult{
					Task:  task,
					Error: err,
				})
			}
		}
	}
}
