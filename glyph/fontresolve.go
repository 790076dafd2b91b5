package glyph

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultFontPath is the configured default on Windows hosts; the resolver
// falls through to the platform search list when it does not exist.
const DefaultFontPath = `C:\Windows\Fonts\seguiemj.ttf`

// fontSearchPaths are well-known emoji font locations tried when the
// configured path is missing.
var fontSearchPaths = []string{
	// WSL mount of Windows fonts
	"/mnt/c/Windows/Fonts/seguiemj.ttf",
	// Linux Noto Color Emoji (common distros)
	"/usr/share/fonts/truetype/noto/NotoColorEmoji.ttf",
	"/usr/share/fonts/noto-color-emoji/NotoColorEmoji.ttf",
	"/usr/share/fonts/google-noto-color-emoji/NotoColorEmoji.ttf",
	"/usr/share/fonts/truetype/google/NotoColorEmoji.ttf",
}

const fcMatchTimeout = 5 * time.Second

// resolveFont finds a usable emoji font file, trying the configured path,
// the known search paths, and finally fc-match. Returns the empty string
// when nothing usable exists; callers decide how to degrade.
func resolveFont(configured string) string {
	if isFile(configured) {
		return configured
	}

	for _, p := range fontSearchPaths {
		if isFile(p) {
			return p
		}
	}

	return fcMatchEmoji()
}

// fcMatchEmoji asks fontconfig for the system's best emoji font.
// Returns the empty string when fc-match is absent or yields nothing.
func fcMatchEmoji() string {
	if _, err := exec.LookPath("fc-match"); err != nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), fcMatchTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "fc-match", "--format=%{file}", "emoji").Output()
	if err != nil {
		return ""
	}

	candidate := strings.TrimSpace(string(out))
	if candidate == "" || !isFile(candidate) {
		return ""
	}
	return candidate
}

func isFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
