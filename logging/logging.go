// Package logging builds the process logger: a zap core teed between
// human-readable stderr output and a rotated JSON log file, with
// sensitive-value redaction applied to every entry.
//
// Standard output is reserved for the line protocol, so nothing in this
// package ever writes to stdout.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnv selects the minimum level (debug/info/warn/error/fatal).
const LogLevelEnv = "GENMOJI_LOG_LEVEL"

// DefaultLogFile is the rotated log file path relative to the working
// directory.
const DefaultLogFile = "genmoji_backend.log"

// New creates the process logger. The stderr core uses a colored
// console encoder at the given level; the file core always encodes JSON
// and rotates via lumberjack. Both cores sit behind the redaction
// decorator.
func New(level zapcore.Level, logFilePath string) (*zap.Logger, error) {
	if logFilePath == "" {
		logFilePath = DefaultLogFile
	}

	core, err := NewTeeCore(level, logFilePath)
	if err != nil {
		return nil, fmt.Errorf("logging: creating core: %w", err)
	}

	return zap.New(
		NewRedactCore(core),
		zap.AddCaller(),
	), nil
}
