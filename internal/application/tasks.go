package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// defaultTaskTimeout bounds a single background task run
const defaultTaskTimeout = 5 * time.Minute

// TaskHandle makes a submitted background task observable: callers can wait on
// Done and read Err afterwards instead of losing the outcome to a detached
// goroutine.
type TaskHandle struct {
	ID   string
	Name string

	done chan struct{}
	err  error
}

// Done is closed when the task finishes
func (h *TaskHandle) Done() <-chan struct{} { return h.done }

// Err returns the task's error. Only valid after Done is closed.
func (h *TaskHandle) Err() error { return h.err }

// TaskRunner runs background work off the request path. Tasks get a detached
// context so they outlive the HTTP response that triggered them.
type TaskRunner struct {
	logger  zerolog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewTaskRunner creates a task runner
func NewTaskRunner(logger zerolog.Logger) *TaskRunner {
	return &TaskRunner{
		logger:  logger,
		timeout: defaultTaskTimeout,
	}
}

// Submit schedules fn on its own goroutine and returns a handle for observing
// completion. Failures are logged here; they never reach the submitting caller.
func (r *TaskRunner) Submit(name string, fn func(ctx context.Context) error) *TaskHandle {
	handle := &TaskHandle{
		ID:   uuid.NewString(),
		Name: name,
		done: make(chan struct{}),
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(handle.done)

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			handle.err = err
			r.logger.Error().
				Err(err).
				Str("task", name).
				Str("taskId", handle.ID).
				Msg("Background task failed")
			return
		}

		r.logger.Debug().
			Str("task", name).
			Str("taskId", handle.ID).
			Msg("Background task completed")
	}()

	return handle
}

// Wait blocks until all submitted tasks have finished (shutdown path)
func (r *TaskRunner) Wait() {
	r.wg.Wait()
}
