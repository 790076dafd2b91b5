package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	const envVar = "GENMOJI_TEST_LOG_LEVEL"

	tests := []struct {
		name  string
		value string
		want  zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel},
		{"uppercase", "DEBUG", zapcore.DebugLevel},
		{"padded", "  warn  ", zapcore.WarnLevel},
		{"warning alias", "warning", zapcore.WarnLevel},
		{"error", "error", zapcore.ErrorLevel},
		{"fatal", "fatal", zapcore.FatalLevel},
		{"unset falls back", "", zapcore.InfoLevel},
		{"garbage falls back", "loud", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envVar, tt.value)
			if got := ParseLogLevel(envVar, zapcore.InfoLevel); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
