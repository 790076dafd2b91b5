package shutdown

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWorkerTrackerStartDone(t *testing.T) {
	tracker := NewWorkerTracker()

	if !tracker.Start() {
		t.Fatal("Start() = false on open tracker")
	}
	if got := tracker.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount() = %d, want 1", got)
	}
	tracker.Done()
	if got := tracker.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after Done = %d, want 0", got)
	}
}

func TestWorkerTrackerRejectsAfterClose(t *testing.T) {
	tracker := NewWorkerTracker()
	tracker.Close()

	if tracker.Start() {
		t.Error("Start() = true on closed tracker")
	}
	if !tracker.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
}

func TestWorkerTrackerWaitJoinsWorker(t *testing.T) {
	tracker := NewWorkerTracker()
	if !tracker.Start() {
		t.Fatal("Start() failed")
	}

	done := make(chan struct{})
	go func() {
		time.Sleep(50 * time.Millisecond)
		tracker.Done()
		close(done)
	}()

	if err := tracker.Wait(2 * time.Second); err != nil {
		t.Errorf("Wait() error: %v", err)
	}
	<-done
}

func TestWorkerTrackerWaitTimeout(t *testing.T) {
	tracker := NewWorkerTracker()
	if !tracker.Start() {
		t.Fatal("Start() failed")
	}
	defer tracker.Done()

	if err := tracker.Wait(50 * time.Millisecond); !errors.Is(err, ErrWaitTimeout) {
		t.Errorf("Wait() error = %v, want ErrWaitTimeout", err)
	}
}

func TestRegistryRunsInPriorityOrder(t *testing.T) {
	reg := NewRegistry()
	var order []string

	reg.Register("logger", 40, func(context.Context) error {
		order = append(order, "logger")
		return nil
	})
	reg.Register("engine", 10, func(context.Context) error {
		order = append(order, "engine")
		return nil
	})
	reg.Register("artifacts", 30, func(context.Context) error {
		order = append(order, "artifacts")
		return nil
	})

	if errs := reg.Shutdown(context.Background()); len(errs) != 0 {
		t.Fatalf("Shutdown() errors: %v", errs)
	}
	want := []string{"engine", "artifacts", "logger"}
	for i, name := range want {
		if order[i] != name {
			t.Errorf("execution order[%d] = %s, want %s", i, order[i], name)
		}
	}
}

func TestRegistryCollectsErrorsAndContinues(t *testing.T) {
	reg := NewRegistry()
	ran := false
	failure := errors.New("close failed")

	reg.Register("broken", 10, func(context.Context) error { return failure })
	reg.Register("after", 20, func(context.Context) error { ran = true; return nil })

	errs := reg.Shutdown(context.Background())
	if len(errs) != 1 || !errors.Is(errs[0], failure) {
		t.Errorf("Shutdown() errors = %v, want wrapped close failure", errs)
	}
	if !ran {
		t.Error("handler after a failing one did not run")
	}
}

func TestRegistryIgnoresLateRegistration(t *testing.T) {
	reg := NewRegistry()
	reg.Shutdown(context.Background())

	reg.Register("late", 10, func(context.Context) error { return nil })
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after late registration, want 0", reg.Len())
	}
}

func TestSignalCounterForcesAtThreshold(t *testing.T) {
	forced := 0
	var forcedSig os.Signal
	counter := NewSignalCounter(2, func(sig os.Signal) {
		forced++
		forcedSig = sig
	})

	if got := counter.Increment(os.Interrupt); got != 1 {
		t.Errorf("first Increment() = %d, want 1", got)
	}
	if forced != 0 {
		t.Error("force fired before threshold")
	}
	counter.Increment(syscall.SIGTERM)
	if forced != 1 {
		t.Errorf("force fired %d times at threshold, want 1", forced)
	}
	if forcedSig != syscall.SIGTERM {
		t.Errorf("force callback got %v, want the threshold-crossing signal", forcedSig)
	}
	counter.Increment(os.Interrupt)
	if forced != 1 {
		t.Errorf("force fired %d times past threshold, want exactly 1", forced)
	}
}

func TestCleanupDebugArtifacts(t *testing.T) {
	dir := t.TempDir()
	stale := []string{
		"emoji_1F600_s42.base_rgba.png",
		"emoji_1F600_s42.conditioning.png",
	}
	keep := "emoji_1F600_s42.png"
	for _, name := range append(stale, keep) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	fn := CleanupDebugArtifacts(zap.NewNop(), func() string { return dir })
	if err := fn(context.Background()); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	for _, name := range stale {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("stale artifact %s not removed", name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
		t.Errorf("final output %s was removed: %v", keep, err)
	}

	// No run recorded an output directory: nothing to clean.
	noDir := CleanupDebugArtifacts(zap.NewNop(), func() string { return "" })
	if err := noDir(context.Background()); err != nil {
		t.Errorf("cleanup with empty dir: %v", err)
	}
}

func TestManagerShutdownJoinsAndCleans(t *testing.T) {
	m := NewManager(zap.NewNop())

	cleaned := false
	m.Register("cleanup", 10, func(context.Context) error { cleaned = true; return nil })

	if !m.Tracker().Start() {
		t.Fatal("Tracker().Start() failed")
	}
	go func() {
		time.Sleep(50 * time.Millisecond)
		m.Tracker().Done()
	}()

	if errs := m.Shutdown(2 * time.Second); len(errs) != 0 {
		t.Errorf("Shutdown() errors: %v", errs)
	}
	if !cleaned {
		t.Error("registered cleanup did not run")
	}
	select {
	case <-m.Context().Done():
	default:
		t.Error("manager context not cancelled after Shutdown")
	}
	if m.Tracker().Start() {
		t.Error("tracker accepts new workers after Shutdown")
	}
}
