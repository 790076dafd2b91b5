package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cskillzmartin/genmoji/core"
	"github.com/cskillzmartin/genmoji/glyph"
	"github.com/cskillzmartin/genmoji/logging"
	"github.com/cskillzmartin/genmoji/matting"
	"github.com/cskillzmartin/genmoji/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env if present. Stderr here: the logger isn't up yet and
	// stdout belongs to the protocol.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: .env not loaded: %v\n", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return core.ExitCodeError
	}

	level := logging.ParseLogLevel(logging.LogLevelEnv, zapcore.InfoLevel)
	logger, err := logging.New(level, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return core.ExitCodeError
	}
	defer logger.Sync()

	logger.Info("backend starting",
		zap.String("model", cfg.ModelPath),
		zap.String("device", cfg.Device),
		zap.String("font", cfg.FontPath),
		zap.Bool("cpu_offload", cfg.EnableCPUOffload),
		zap.String("log_file", cfg.LogFile),
	)

	manager := shutdown.NewManager(logger)
	manager.Start(func(sig os.Signal) {
		code := core.ExitCodeSIGINT
		if sig == syscall.SIGTERM {
			code = core.ExitCodeSIGTERM
		}
		fmt.Fprintf(os.Stderr, "forced exit: %s\n", core.ExitCodeName(code))
		os.Exit(code)
	})

	renderer := glyph.NewRenderer(logger)
	remover := matting.NewCLIRemover(logger)
	sessions := matting.NewCache(logger)
	state := NewSession(cfg.FontPath, renderer, remover, sessions, manager.Tracker())

	backend := NewBackend(cfg, state, os.Stdout, logger, manager)

	manager.Register("engine", 10, func(ctx context.Context) error {
		if eng := state.Engine(); eng != nil {
			return eng.Close()
		}
		return nil
	})
	manager.Register("artifacts", 30, shutdown.CleanupDebugArtifacts(logger, state.LastOutputDir))
	manager.Register("logger", 40, func(context.Context) error {
		logger.Sync()
		return nil
	})

	backend.Run(manager.Context(), os.Stdin)

	manager.Shutdown(cfg.WorkerJoinTimeout)
	logger.Info("backend exiting")
	return core.ExitCodeSuccess
}
