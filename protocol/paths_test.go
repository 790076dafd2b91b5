package protocol

import (
	"path/filepath"
	"testing"
)

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name       string
		emoji      string
		seed       int64
		batchIndex int
		batchSize  int
		want       string
	}{
		{"single batch omits suffix", "😀", 42, 1, 1, "emoji_1F600_s42.png"},
		{"multi batch first pass", "😀", 42, 1, 2, "emoji_1F600_s42_b1.png"},
		{"multi batch second pass", "😀", 45, 2, 2, "emoji_1F600_s45_b2.png"},
		{"multi codepoint emoji", "❤️", 7, 1, 1, "emoji_2764_FE0F_s7.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputFileName("/out", tt.emoji, tt.seed, tt.batchIndex, tt.batchSize)
			want := filepath.Join("/out", tt.want)
			if got != want {
				t.Errorf("OutputFileName() = %q, want %q", got, want)
			}
		})
	}
}

func TestDebugArtifactPaths(t *testing.T) {
	base, conditioning := DebugArtifactPaths(filepath.Join("/out", "emoji_1F600_s42.png"))

	if base != filepath.Join("/out", "emoji_1F600_s42.base_rgba.png") {
		t.Errorf("base artifact = %q", base)
	}
	if conditioning != filepath.Join("/out", "emoji_1F600_s42.conditioning.png") {
		t.Errorf("conditioning artifact = %q", conditioning)
	}
}
