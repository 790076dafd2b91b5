package shutdown

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// debugArtifactPatterns match intermediate images written next to
// outputs during debug runs. They are deleted when a job succeeds, so
// any survivors belong to crashed or killed runs.
var debugArtifactPatterns = []string{
	"*.base_rgba.png",
	"*.conditioning.png",
}

// CleanupDebugArtifacts returns a shutdown function that removes stale
// debug images from the most recent output directory. The directory is
// resolved through dir at shutdown time because generation runs choose
// it per command; an empty result means no run wrote outputs.
//
// Priority recommendation: 30+ (after the engine is closed).
//
// The cleanup function:
//   - Removes files matching the debug artifact patterns
//   - Logs each removal (success or failure)
//   - Continues even if individual removals fail
//   - Returns nil so cleanup never blocks shutdown (errors are logged)
func CleanupDebugArtifacts(logger *zap.Logger, dir func() string) ShutdownFunc {
	return func(ctx context.Context) error {
		target := dir()
		if target == "" {
			return nil
		}
		for _, pattern := range debugArtifactPatterns {
			select {
			case <-ctx.Done():
				logger.Warn("shutdown context cancelled, skipping remaining artifact cleanup")
				return nil
			default:
			}

			matches, err := filepath.Glob(filepath.Join(target, pattern))
			if err != nil {
				logger.Warn("bad artifact pattern", zap.String("pattern", pattern), zap.Error(err))
				continue
			}
			for _, path := range matches {
				if err := os.Remove(path); err != nil {
					logger.Warn("failed to remove debug artifact",
						zap.String("path", path), zap.Error(err))
					continue
				}
				logger.Debug("removed stale debug artifact", zap.String("path", path))
			}
		}
		return nil
	}
}
