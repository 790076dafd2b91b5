package main

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/cskillzmartin/genmoji/engine"
	"github.com/cskillzmartin/genmoji/matting"
	"github.com/cskillzmartin/genmoji/shutdown"
)

// diffuser is the slice of the engine the orchestrators call. Narrowed
// to an interface so orchestrator tests can substitute a fake.
type diffuser interface {
	Generate(ctx context.Context, req engine.Request) (image.Image, error)
	Mode() string
	Fallback() bool
	FallbackReason() string
	Close() error
}

// glyphRenderer is the slice of glyph.Renderer the orchestrators call.
type glyphRenderer interface {
	Render(emojiChar, fontPath string, outputSize int) (*image.RGBA, error)
	ResolvedFont(fontPath string) string
}

// Session is the process-lifetime mutable state: the active engine
// handle, the configured font path, the matting session cache, the
// cancellation flag, progress counters and the batch run guard.
//
// Concurrency: progress counters are written by the batch worker and
// read by the dispatch goroutine, so they sit behind an RWMutex. The
// cancel flag is a plain atomic. The run guard exists solely to prevent
// two simultaneous batch runs.
type Session struct {
	mu sync.RWMutex

	engine        diffuser
	fontPath      string
	lastOutputDir string

	currentIndex int
	totalItems   int
	currentEmoji string

	cancelRequested atomic.Bool

	runMu   sync.Mutex
	tracker *shutdown.WorkerTracker

	mattingSessions *matting.Cache
	remover         matting.Remover
	renderer        glyphRenderer
}

// NewSession creates an idle session. The engine handle stays nil until
// the first init command.
func NewSession(fontPath string, renderer glyphRenderer, remover matting.Remover,
	mattingSessions *matting.Cache, tracker *shutdown.WorkerTracker) *Session {
	return &Session{
		fontPath:        fontPath,
		renderer:        renderer,
		remover:         remover,
		mattingSessions: mattingSessions,
		tracker:         tracker,
	}
}

// SetEngine installs a new engine handle, closing any previous one.
func (s *Session) SetEngine(eng diffuser) {
	s.mu.Lock()
	prev := s.engine
	s.engine = eng
	s.mu.Unlock()
	if prev != nil {
		prev.Close()
	}
}

// Engine returns the active engine handle, nil before init.
func (s *Session) Engine() diffuser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// SetFontPath records the configured glyph font path.
func (s *Session) SetFontPath(path string) {
	s.mu.Lock()
	s.fontPath = path
	s.mu.Unlock()
}

// FontPath returns the configured glyph font path.
func (s *Session) FontPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fontPath
}

// SetLastOutputDir records where the most recent run wrote outputs, so
// shutdown can sweep stale debug artifacts from it.
func (s *Session) SetLastOutputDir(dir string) {
	s.mu.Lock()
	s.lastOutputDir = dir
	s.mu.Unlock()
}

// LastOutputDir returns the most recent output directory, empty before
// the first run.
func (s *Session) LastOutputDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastOutputDir
}

// MattingSession returns the cached matting session for model.
func (s *Session) MattingSession(model string) (*matting.Session, error) {
	return s.mattingSessions.Session(model)
}

// BeginRun attempts to claim the batch run guard. Returns false when a
// batch worker is already running or shutdown has begun. A false return
// is not an error by itself; callers emit a busy error event.
func (s *Session) BeginRun() bool {
	if !s.runMu.TryLock() {
		return false
	}
	if !s.tracker.Start() {
		s.runMu.Unlock()
		return false
	}
	return true
}

// EndRun releases the batch run guard. Must be called exactly once per
// successful BeginRun, from the worker that owns the run.
func (s *Session) EndRun() {
	s.tracker.Done()
	s.runMu.Unlock()
}

// Busy reports whether a batch worker is currently alive. True exactly
// while the run guard is held by a worker.
func (s *Session) Busy() bool {
	return s.tracker.ActiveCount() > 0
}

// RequestCancel sets the cancellation flag. Observed by the batch
// worker at item boundaries only.
func (s *Session) RequestCancel() { s.cancelRequested.Store(true) }

// ClearCancel resets the cancellation flag before a new run.
func (s *Session) ClearCancel() { s.cancelRequested.Store(false) }

// CancelRequested reports whether cancellation has been requested.
func (s *Session) CancelRequested() bool { return s.cancelRequested.Load() }

// SetProgress updates the progress counters.
func (s *Session) SetProgress(current, total int, emoji string) {
	s.mu.Lock()
	s.currentIndex = current
	s.totalItems = total
	s.currentEmoji = emoji
	s.mu.Unlock()
}

// ResetProgress clears the progress counters. Invariant: outside an
// active run all counters are zero/empty.
func (s *Session) ResetProgress() {
	s.SetProgress(0, 0, "")
}

// Progress returns the current progress counters.
func (s *Session) Progress() (current, total int, emoji string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentIndex, s.totalItems, s.currentEmoji
}
