// Package shutdown provides the process-exit coordination molecules:
// tracking the batch worker, running ordered cleanup functions, and
// escalating repeated interrupt signals to a forced exit.
package shutdown

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrTrackerClosed is returned when trying to start a worker on a closed tracker.
var ErrTrackerClosed = errors.New("worker tracker is closed")

// ErrWaitTimeout is returned when Wait times out before all workers finish.
var ErrWaitTimeout = errors.New("wait timeout: workers did not finish in time")

// ShutdownFunc is one cleanup step run during process exit. The context
// bounds how long the step may take.
type ShutdownFunc func(ctx context.Context) error

// WorkerTracker tracks in-flight background workers so that quit can
// join them with a bounded wait instead of abandoning them mid-run.
//
// At most one batch worker exists at a time in this backend; the
// tracker stays general because it costs nothing.
//
// Usage:
//
//	tracker := NewWorkerTracker()
//
//	// When spawning the batch worker:
//	if !tracker.Start() {
//	    return // shutting down, reject the run
//	}
//	go func() {
//	    defer tracker.Done()
//	    // ... run batch ...
//	}()
//
//	// On quit:
//	tracker.Close()
//	if err := tracker.Wait(30 * time.Second); err != nil {
//	    log.Println("worker did not finish in time")
//	}
type WorkerTracker struct {
	wg     sync.WaitGroup
	mu     sync.RWMutex
	active int64
	closed bool
}

// NewWorkerTracker creates a tracker ready to track workers.
func NewWorkerTracker() *WorkerTracker {
	return &WorkerTracker{}
}

// Start attempts to register a new worker. Returns false when the
// tracker is closed; the caller must reject the run in that case.
//
// If Start returns true, the worker MUST call Done exactly once.
func (t *WorkerTracker) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	t.wg.Add(1)
	atomic.AddInt64(&t.active, 1)
	return true
}

// Done marks a worker as finished. Must be called exactly once for each
// successful Start call.
func (t *WorkerTracker) Done() {
	atomic.AddInt64(&t.active, -1)
	t.wg.Done()
}

// Wait blocks until all tracked workers finish or the timeout is
// reached. Returns ErrWaitTimeout on timeout.
func (t *WorkerTracker) Wait(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return ErrWaitTimeout
	}
}

// Close prevents new workers from starting. Workers already running
// continue until they call Done.
func (t *WorkerTracker) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// ActiveCount returns the number of workers currently running.
func (t *WorkerTracker) ActiveCount() int64 {
	return atomic.LoadInt64(&t.active)
}

// IsClosed reports whether the tracker has been closed.
func (t *WorkerTracker) IsClosed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}
