package glyph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cskillzmartin/genmoji/imaging"
)

// writeTestFont writes an embedded TTF to a temp file so tests never
// depend on host-installed fonts.
func writeTestFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-font.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("writing test font: %v", err)
	}
	return path
}

func TestRender_VisibleGlyph(t *testing.T) {
	r := NewRenderer(zap.NewNop())
	fontPath := writeTestFont(t)

	img, err := r.Render("A", fontPath, 64)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Errorf("output bounds = %v, want 64x64", img.Bounds())
	}

	box, visible := imaging.AlphaBounds(img)
	if !visible {
		t.Fatal("rendered glyph has no visible pixels")
	}

	// The glyph should be roughly centered, not stuck in a corner.
	center := img.Bounds().Dx() / 2
	if box.Max.X < center || box.Min.X > center {
		t.Errorf("glyph bbox %v does not straddle horizontal center %d", box, center)
	}
}

func TestRender_OutputSizeIndependentOfRenderSize(t *testing.T) {
	r := NewRenderer(zap.NewNop())
	fontPath := writeTestFont(t)

	for _, size := range []int{32, 128, 512} {
		img, err := r.Render("X", fontPath, size)
		if err != nil {
			t.Fatalf("Render at %d failed: %v", size, err)
		}
		if img.Bounds().Dx() != size {
			t.Errorf("size %d: got %d", size, img.Bounds().Dx())
		}
	}
}

func TestRender_CorruptFont(t *testing.T) {
	r := NewRenderer(zap.NewNop())
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("this is not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := r.Render("A", path, 64)
	if !errors.Is(err, ErrFontLoadFailed) {
		t.Errorf("expected ErrFontLoadFailed, got %v", err)
	}
}

func TestResolvedFont_ConfiguredPathWins(t *testing.T) {
	r := NewRenderer(zap.NewNop())
	fontPath := writeTestFont(t)

	if got := r.ResolvedFont(fontPath); got != fontPath {
		t.Errorf("ResolvedFont(%q) = %q, want configured path", fontPath, got)
	}
}

func TestResolvedFont_Memoized(t *testing.T) {
	r := NewRenderer(zap.NewNop())
	fontPath := writeTestFont(t)

	first := r.ResolvedFont(fontPath)

	// Removing the file must not change the cached resolution.
	if err := os.Remove(fontPath); err != nil {
		t.Fatal(err)
	}
	second := r.ResolvedFont(fontPath)
	if first != second {
		t.Errorf("resolution not memoized: %q then %q", first, second)
	}
}

func TestIsFile(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want bool
	}{
		{"empty path", func(t *testing.T) string { return "" }, false},
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") }, false},
		{"directory", func(t *testing.T) string { return t.TempDir() }, false},
		{"regular file", writeTestFont, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isFile(tt.path(t)); got != tt.want {
				t.Errorf("isFile() = %v, want %v", got, tt.want)
			}
		})
	}
}
