package workers

import (
	"context"

	"github.com/google/uuid"
)

// Task is one unit of background work. A sweep task owns every gig of one artist.
type Task struct {
	ID       string
	ArtistID uuid.UUID
}

// TaskProcessor handles tasks pulled off the pool queue.
// Implementations should be idempotent since a task may be retried on the next tick.
type TaskProcessor interface {
	// Process handles a single task.
	Process(ctx context.Context, task Task) error

	// Name returns the processor name for logging.
	Name() string
}

// WorkerPool defines the interface for managing a pool of task workers.
type WorkerPool interface {
	// Start launches the workers.
	Start(ctx context.Context) error

	// Submit queues a task. Blocks if the queue is full.
	Submit(ctx context.Context, task Task) error

	// Drain stops accepting new tasks and waits for queued and in-flight tasks.
	Drain(ctx context.Context) error

	// Stop immediately stops all workers.
	Stop()
}
