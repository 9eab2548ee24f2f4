package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"bar-council-campaign/metrics"
)

// TaskError reports a failed background task
type TaskError struct {
	Task string
	Err  error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("background task %s failed: %v", e.Task, e.Err)
}

func (e TaskError) Unwrap() error {
	return e.Err
}

// TaskSubmitter starts fire-and-forget work
type TaskSubmitter interface {
	Go(name string, fn func(ctx context.Context) error) bool
}

// TaskRunner runs fire-and-forget work after a response has been sent. Every
// failure is delivered on an error channel and logged, so none is silently dropped.
type TaskRunner struct {
	timeout time.Duration
	errs    chan TaskError
	tasks   sync.WaitGroup
	drained chan struct{}

	mu     sync.Mutex
	closed bool

	// OnError is called for every failure after it is logged
	OnError func(TaskError)
}

// Ensure TaskRunner implements TaskSubmitter
var _ TaskSubmitter = (*TaskRunner)(nil)

// NewTaskRunner creates a TaskRunner whose tasks are bounded by timeout
func NewTaskRunner(timeout time.Duration) *TaskRunner {
	r := &TaskRunner{
		timeout: timeout,
		errs:    make(chan TaskError, 64),
		drained: make(chan struct{}),
	}
	go r.consume()
	return r
}

func (r *TaskRunner) consume() {
	defer close(r.drained)
	for te := range r.errs {
		log.Printf("❌ %v", te)
		metrics.BackgroundFailed(te.Task)
		if r.OnError != nil {
			r.OnError(te)
		}
	}
}

// Go runs fn on its own goroutine with a fresh bounded context. It returns false
// when the runner is closed and fn was not started.
func (r *TaskRunner) Go(name string, fn func(ctx context.Context) error) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		log.Printf("⚠️  Background task %s dropped: runner closed", name)
		return false
	}
	r.tasks.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.tasks.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		defer func() {
			if p := recover(); p != nil {
				r.errs <- TaskError{Task: name, Err: fmt.Errorf("panic: %v", p)}
			}
		}()

		if err := fn(ctx); err != nil {
			r.errs <- TaskError{Task: name, Err: err}
		}
	}()
	return true
}

// Close stops accepting tasks, waits for running ones and flushes their errors
func (r *TaskRunner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.tasks.Wait()
	close(r.errs)
	<-r.drained
}
