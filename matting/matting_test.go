package matting

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"go.uber.org/zap"
)

// installFakeRembg places an executable shell script named rembg on PATH
// and returns after pointing PATH at it. The script body decides the
// fake's behavior.
func installFakeRembg(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake rembg script requires a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "rembg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("writing fake rembg: %v", err)
	}
	t.Setenv("PATH", dir)
}

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	return img
}

func TestCacheReusesSessions(t *testing.T) {
	installFakeRembg(t, "/bin/cat")
	cache := NewCache(zap.NewNop())

	first, err := cache.Session("birefnet-general")
	if err != nil {
		t.Fatalf("Session() error: %v", err)
	}
	second, err := cache.Session("birefnet-general")
	if err != nil {
		t.Fatalf("Session() error on reuse: %v", err)
	}
	if first != second {
		t.Error("same model name returned distinct session handles")
	}

	other, err := cache.Session("u2net")
	if err != nil {
		t.Fatalf("Session() error for second model: %v", err)
	}
	if other == first {
		t.Error("distinct model names share a session handle")
	}
}

func TestCacheDefaultModel(t *testing.T) {
	installFakeRembg(t, "/bin/cat")
	cache := NewCache(zap.NewNop())

	s, err := cache.Session("")
	if err != nil {
		t.Fatalf("Session() error: %v", err)
	}
	if s.Model() != DefaultModel {
		t.Errorf("Model() = %q, want %q", s.Model(), DefaultModel)
	}
}

func TestCacheMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cache := NewCache(zap.NewNop())

	_, err := cache.Session("birefnet-general")
	if !errors.Is(err, ErrRembgNotFound) {
		t.Errorf("Session() error = %v, want ErrRembgNotFound", err)
	}
}

func TestRemovePipesThroughSubprocess(t *testing.T) {
	// The fake echoes stdin back, so the matte equals the input image.
	installFakeRembg(t, "/bin/cat")
	cache := NewCache(zap.NewNop())
	session, err := cache.Session("birefnet-general")
	if err != nil {
		t.Fatalf("Session() error: %v", err)
	}

	remover := NewCLIRemover(zap.NewNop())
	out, err := remover.Remove(context.Background(), session, testImage())
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if got := out.Bounds().Dx(); got != 16 {
		t.Errorf("output width = %d, want 16", got)
	}
	if c := out.NRGBAAt(8, 8); c.R != 200 || c.A != 255 {
		t.Errorf("pixel (8,8) = %+v, want passthrough of input", c)
	}
}

func TestRemoveSubprocessFailure(t *testing.T) {
	installFakeRembg(t, "echo 'model not found' >&2; exit 1")
	cache := NewCache(zap.NewNop())
	session, err := cache.Session("birefnet-general")
	if err != nil {
		t.Fatalf("Session() error: %v", err)
	}

	remover := NewCLIRemover(zap.NewNop())
	_, err = remover.Remove(context.Background(), session, testImage())
	if !errors.Is(err, ErrMattingFailed) {
		t.Errorf("Remove() error = %v, want ErrMattingFailed", err)
	}
}

func TestRemoveContextCancellation(t *testing.T) {
	installFakeRembg(t, "exec /bin/sleep 30")
	cache := NewCache(zap.NewNop())
	session, err := cache.Session("birefnet-general")
	if err != nil {
		t.Fatalf("Session() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	remover := NewCLIRemover(zap.NewNop())
	_, err = remover.Remove(ctx, session, testImage())
	if !errors.Is(err, ErrMattingFailed) {
		t.Errorf("Remove() error = %v, want ErrMattingFailed on timeout", err)
	}
}

func TestRemoveNilSession(t *testing.T) {
	remover := NewCLIRemover(zap.NewNop())
	_, err := remover.Remove(context.Background(), nil, testImage())
	if !errors.Is(err, ErrSessionInit) {
		t.Errorf("Remove() error = %v, want ErrSessionInit", err)
	}
}
