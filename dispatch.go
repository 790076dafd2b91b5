package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/cskillzmartin/genmoji/catalog"
	"github.com/cskillzmartin/genmoji/engine"
	"github.com/cskillzmartin/genmoji/protocol"
	"github.com/cskillzmartin/genmoji/shutdown"
)

// maxLineBytes bounds one input line. Commands are small JSON objects;
// the generous limit leaves room for long prompts. Longer lines are
// drained and dropped like any other malformed input.
const maxLineBytes = 1 << 20

// Backend wires the session state, event emitter and logger together
// and hosts the command handlers.
type Backend struct {
	cfg     Config
	state   *Session
	events  *protocol.Emitter
	logger  *zap.Logger
	manager *shutdown.Manager

	emitFailure sync.Once
}

// NewBackend constructs the backend around an input-independent output
// writer so tests can drive it with buffers.
func NewBackend(cfg Config, state *Session, out io.Writer, logger *zap.Logger, manager *shutdown.Manager) *Backend {
	return &Backend{
		cfg:     cfg,
		state:   state,
		events:  protocol.NewEmitter(out),
		logger:  logger,
		manager: manager,
	}
}

// Run is the command dispatcher: a single sequential loop over input
// lines. Malformed lines are dropped without diagnostic. Returns when
// quit arrives, input closes, or ctx is cancelled.
func (b *Backend) Run(ctx context.Context, in io.Reader) {
	reader := bufio.NewReaderSize(in, 64*1024)

	for {
		line, oversized, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				b.logger.Warn("input stream error", zap.Error(err))
			}
			break
		}

		select {
		case <-ctx.Done():
			b.handleQuit()
			return
		default:
		}

		if oversized {
			continue
		}
		cmd, err := protocol.ParseCommand(line)
		if err != nil {
			continue
		}

		switch cmd.Cmd {
		case protocol.CmdInit:
			b.handleInit(cmd)
		case protocol.CmdListEmojis:
			b.emit(protocol.NewEmojiList(catalog.All()))
		case protocol.CmdGenerate:
			b.handleGenerate(ctx, cmd)
		case protocol.CmdGenerateAll:
			b.handleGenerateAll(ctx, cmd)
		case protocol.CmdCancel:
			b.handleCancel()
		case protocol.CmdQuit:
			b.handleQuit()
			return
		}
	}

	// Input closed without quit: treat as quit so the worker still gets
	// its bounded join.
	b.handleQuit()
}

// readLine reads the next input line, buffering across reader chunks.
// A line longer than maxLineBytes is consumed to its newline and
// reported as oversized so the dispatcher can drop it and keep serving
// later commands.
func readLine(r *bufio.Reader) (line []byte, oversized bool, err error) {
	for {
		chunk, err := r.ReadSlice('\n')
		if !oversized {
			line = append(line, chunk...)
			if len(line) > maxLineBytes {
				line = nil
				oversized = true
			}
		}
		if err == nil {
			return line, oversized, nil
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		// EOF or read failure; deliver a final unterminated line first.
		if len(line) > 0 {
			return line, oversized, nil
		}
		return nil, oversized, err
	}
}

// emit writes one protocol event. A failed write means the driving
// process has gone away or stdout is broken; the protocol offers no
// recovery, so the first failure is logged for the post-mortem and the
// rest are dropped quietly.
func (b *Backend) emit(event any) {
	if err := b.events.Emit(event); err != nil {
		b.emitFailure.Do(func() {
			b.logger.Warn("event channel write failed", zap.Error(err))
		})
	}
}

// handleInit (re)constructs the engine from the init command merged
// over config defaults and emits a ready event. Engine construction
// never fails hard; unusable pipelines surface as fallback mode.
func (b *Backend) handleInit(cmd protocol.Command) {
	cfg := b.cfg
	if cmd.ModelPath != "" {
		cfg.ModelPath = cmd.ModelPath
	}
	if cmd.Device != "" {
		cfg.Device = cmd.Device
	}
	if cmd.FontPath != "" {
		cfg.FontPath = cmd.FontPath
	}
	if cmd.EnableCPUOffload {
		cfg.EnableCPUOffload = true
	}
	b.state.SetFontPath(cfg.FontPath)

	b.logger.Info("initializing engine",
		zap.String("model", cfg.ModelPath),
		zap.String("device", cfg.Device),
		zap.Bool("cpu_offload", cfg.EnableCPUOffload),
	)

	eng := engine.New(engine.Config{
		ModelPath:        cfg.ModelPath,
		Device:           cfg.Device,
		EnableCPUOffload: cfg.EnableCPUOffload,
	}, b.logger)
	b.state.SetEngine(eng)

	b.reportDependencies(eng)

	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	b.emit(protocol.NewReady(
		eng.Mode(),
		eng.Fallback(),
		eng.FallbackReason(),
		exe,
		exe,
		engine.Version,
	))
}

// handleGenerate runs one job synchronously on the dispatch goroutine.
// Rejected while a batch worker is alive.
func (b *Backend) handleGenerate(ctx context.Context, cmd protocol.Command) {
	if b.state.Busy() {
		b.emit(protocol.NewError(cmd.JobID, "Generation already in progress."))
		return
	}
	if err := protocol.ValidateGenerate(cmd); err != nil {
		b.emit(protocol.NewError(cmd.JobID, err.Error()))
		return
	}

	jobID := cmd.JobID
	if jobID == "" {
		jobID = newJobID()
	}

	b.state.ClearCancel()
	b.runJob(ctx, job{
		id:               jobID,
		emoji:            cmd.Emoji,
		prompt:           cmd.Prompt,
		outputPath:       cmd.OutputPath,
		settings:         protocol.Normalize(cmd.Settings),
		preserveProgress: cmd.PreserveProgress,
	})
}

// handleGenerateAll starts the batch orchestrator on a dedicated worker
// so the dispatch loop keeps consuming cancel/quit. A second concurrent
// batch is rejected, not queued.
func (b *Backend) handleGenerateAll(ctx context.Context, cmd protocol.Command) {
	if b.state.Busy() {
		b.emit(protocol.NewError("", "Generation already in progress."))
		return
	}
	if err := protocol.ValidateGenerateAll(cmd); err != nil {
		b.emit(protocol.NewError("", err.Error()))
		return
	}
	if !b.state.BeginRun() {
		b.emit(protocol.NewError("", "Generation already in progress."))
		return
	}

	if err := os.MkdirAll(cmd.OutputDir, 0o755); err != nil {
		b.state.EndRun()
		b.emit(protocol.NewError("", err.Error()))
		return
	}

	b.state.ClearCancel()
	settings := protocol.Normalize(cmd.Settings)

	go func() {
		defer b.state.EndRun()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("batch worker panicked", zap.Any("panic", r))
				b.emit(protocol.NewError("", "Batch generation failed unexpectedly."))
				b.state.ResetProgress()
			}
		}()
		b.runBatch(ctx, cmd.Prompt, cmd.OutputDir, settings)
	}()
}

// handleCancel sets the cancellation flag. The running worker emits the
// canceled event once it observes the flag at the next item boundary;
// with nothing running the flag is simply ignored.
func (b *Backend) handleCancel() {
	b.state.RequestCancel()
	current, total, emoji := b.state.Progress()
	if total > 0 {
		if emoji == "" {
			emoji = "?"
		}
		b.logger.Info("cancel requested, waiting for current item to finish",
			zap.Int("current", current),
			zap.Int("total", total),
			zap.String("emoji", emoji),
		)
		return
	}
	b.logger.Info("cancel requested, stopping at next safe point")
}

// handleQuit signals cancellation and joins the batch worker with a
// bounded wait before the dispatch loop returns.
func (b *Backend) handleQuit() {
	b.state.RequestCancel()
	tracker := b.manager.Tracker()
	tracker.Close()
	if err := tracker.Wait(b.cfg.WorkerJoinTimeout); err != nil {
		if errors.Is(err, shutdown.ErrWaitTimeout) {
			b.logger.Warn("batch worker still running at quit",
				zap.Duration("timeout", b.cfg.WorkerJoinTimeout))
		}
		return
	}
	b.logger.Info("dispatcher stopped")
}
