package logging

import (
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// JSON keys in the file log. Tooling that tails the log file keys off
// these names.
const (
	FieldTimestamp  = "timestamp"
	FieldLevel      = "level"
	FieldMessage    = "message"
	FieldCaller     = "caller"
	FieldStacktrace = "stacktrace"
)

// Rotation policy for the backend log file. Generation runs log one
// line per job, so the file grows slowly; a short retention keeps old
// batch runs from accumulating next to the outputs.
const (
	logFileMaxSizeMB  = 20
	logFileMaxBackups = 3
	logFileMaxAgeDays = 14
)

// NewTeeCore creates a zapcore.Core that tees every entry to stderr and
// a rotated log file. The file side always encodes JSON for structured
// processing; stderr uses the colored console encoder. Stdout is never
// a destination because it carries the line protocol.
func NewTeeCore(level zapcore.Level, filePath string) (zapcore.Core, error) {
	return NewTeeCoreWithWriters(level, zapcore.Lock(os.Stderr), NewFileWriter(filePath)), nil
}

// NewTeeCoreWithWriters creates a tee core over the provided writers.
// Tests substitute in-memory writers here.
func NewTeeCoreWithWriters(level zapcore.Level, consoleWriter, fileWriter zapcore.WriteSyncer) zapcore.Core {
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileEncoderConfig()),
		fileWriter,
		level,
	)

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		consoleWriter,
		level,
	)

	return zapcore.NewTee(consoleCore, fileCore)
}

// NewFileWriter returns a WriteSyncer over a lumberjack-rotated file.
func NewFileWriter(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	})
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       FieldTimestamp,
		LevelKey:      FieldLevel,
		MessageKey:    FieldMessage,
		CallerKey:     FieldCaller,
		StacktraceKey: FieldStacktrace,
		LineEnding:    zapcore.DefaultLineEnding,

		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// consoleEncoderConfig drops the date from timestamps: stderr output is
// read live next to the dependency report, not archived.
func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := fileEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("15:04:05.000"))
	}
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}
