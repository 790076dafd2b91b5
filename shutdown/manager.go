package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultWorkerJoinTimeout bounds how long quit waits for the batch
// worker before giving up and exiting anyway.
const DefaultWorkerJoinTimeout = 30 * time.Second

// Manager composes the WorkerTracker, Registry and SignalCounter into
// a single shutdown coordinator for main.
//
// Interrupt handling: the first SIGINT/SIGTERM cancels the manager's
// context so the dispatch loop can drain; the second forces an
// immediate exit via the configured callback.
type Manager struct {
	logger  *zap.Logger
	tracker *WorkerTracker
	reg     *Registry

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager creates a Manager with an empty registry and an open
// worker tracker.
func NewManager(logger *zap.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		logger:  logger,
		tracker: NewWorkerTracker(),
		reg:     NewRegistry(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Context is cancelled when shutdown begins (signal or Shutdown call).
func (m *Manager) Context() context.Context { return m.ctx }

// Tracker returns the worker tracker used for batch workers.
func (m *Manager) Tracker() *WorkerTracker { return m.tracker }

// Register adds a cleanup function (lower priority runs first).
func (m *Manager) Register(name string, priority int, fn ShutdownFunc) {
	m.reg.Register(name, priority, fn)
}

// Start installs the interrupt handler. onForce runs when a second
// signal arrives before graceful shutdown completes; it should exit the
// process with the code matching the signal it receives.
func (m *Manager) Start(onForce func(os.Signal)) {
	counter := NewSignalCounter(2, onForce)
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range sigCh {
			if counter.Increment(sig) == 1 {
				m.logger.Info("interrupt received, shutting down gracefully",
					zap.String("signal", sig.String()))
				m.cancel()
			}
		}
	}()
}

// Shutdown performs the full exit sequence: stop accepting workers,
// join the running worker with a bounded wait, then run the cleanup
// registry. Returns cleanup errors; a worker join timeout is logged,
// not returned, because exit proceeds regardless.
func (m *Manager) Shutdown(joinTimeout time.Duration) []error {
	m.cancel()
	m.tracker.Close()

	if joinTimeout <= 0 {
		joinTimeout = DefaultWorkerJoinTimeout
	}
	if err := m.tracker.Wait(joinTimeout); err != nil {
		m.logger.Warn("batch worker did not finish before exit",
			zap.Duration("timeout", joinTimeout),
			zap.Int64("active", m.tracker.ActiveCount()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	errs := m.reg.Shutdown(ctx)
	for _, err := range errs {
		m.logger.Error("cleanup failed", zap.Error(err))
	}
	return errs
}
