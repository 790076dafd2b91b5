package glyph

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/cskillzmartin/genmoji/core"
	"github.com/cskillzmartin/genmoji/imaging"
)

// DefaultRenderSize is the native raster resolution. Glyphs are drawn at
// this fixed size and then resampled to the requested output size, so
// glyph framing stays identical across output resolutions.
const DefaultRenderSize = 128

// TraceEnv enables verbose render-coverage tracing (1/true/yes/on).
const TraceEnv = "GENMOJI_RENDER_TRACE"

// fontScale is the face size relative to the render square, leaving
// margin so wide glyphs are not clipped.
const fontScale = 0.75

// Renderer rasterizes emoji characters. Font resolution and parsed faces
// are cached per configured path for the lifetime of the Renderer; the
// owning session controls cache lifetime by owning the Renderer.
//
// Thread-safety: Renderer is safe for concurrent use, though the backend
// only renders from one goroutine at a time.
type Renderer struct {
	logger *zap.Logger
	trace  bool

	mu       sync.Mutex
	resolved map[string]string    // configured path -> resolved path ("" = unresolvable)
	faces    map[string]font.Face // resolved path -> parsed face
	logged   map[string]struct{}  // configured paths already reported
}

// NewRenderer creates a Renderer. The logger must not be nil.
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{
		logger:   logger,
		trace:    core.ParseBoolEnv(TraceEnv, false),
		resolved: make(map[string]string),
		faces:    make(map[string]font.Face),
		logged:   make(map[string]struct{}),
	}
}

// Render draws one emoji character centered on a transparent square and
// resamples it to outputSize. Returns ErrBlankGlyph when the resolved
// font cannot produce any visible pixels for the character.
func (r *Renderer) Render(emojiChar, fontPath string, outputSize int) (*image.RGBA, error) {
	if outputSize <= 0 {
		outputSize = DefaultRenderSize
	}

	face, err := r.faceFor(fontPath)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, DefaultRenderSize, DefaultRenderSize))

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	// Center using the measured bounding box so every emoji is framed
	// consistently regardless of its metrics.
	bounds, _ := drawer.BoundString(emojiChar)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := (DefaultRenderSize-textW)/2 - bounds.Min.X.Floor()
	y := (DefaultRenderSize-textH)/2 - bounds.Min.Y.Floor()
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(emojiChar)

	result := imaging.ResizeSquare(canvas, outputSize)

	box, visible := imaging.AlphaBounds(result)
	if r.trace && visible {
		r.logger.Debug("rendered glyph",
			zap.String("emoji", emojiChar),
			zap.String("alpha_bbox", box.String()),
			zap.Float64("coverage", imaging.AlphaCoverage(result)),
		)
	}
	if !visible {
		return nil, fmt.Errorf("%w: %q cannot be rendered by the resolved font; "+
			"on Linux/WSL install a color-emoji font (e.g. fonts-noto-color-emoji)",
			ErrBlankGlyph, emojiChar)
	}

	return result, nil
}

// ResolvedFont reports the font file the renderer would use for the given
// configured path, for startup diagnostics. Empty means unresolvable.
func (r *Renderer) ResolvedFont(fontPath string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(fontPath)
}

func (r *Renderer) faceFor(fontPath string) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolved := r.resolveLocked(fontPath)
	if resolved == "" {
		return nil, fmt.Errorf("%w: tried %q and known system paths", ErrFontNotFound, fontPath)
	}

	if face, ok := r.faces[resolved]; ok {
		return face, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoadFailed, resolved, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoadFailed, resolved, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    DefaultRenderSize * fontScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoadFailed, resolved, err)
	}

	r.faces[resolved] = face
	return face, nil
}

// resolveLocked memoizes font resolution per configured path and logs the
// outcome once. Callers must hold r.mu.
func (r *Renderer) resolveLocked(fontPath string) string {
	resolved, ok := r.resolved[fontPath]
	if !ok {
		resolved = resolveFont(fontPath)
		r.resolved[fontPath] = resolved
	}

	if _, seen := r.logged[fontPath]; !seen {
		r.logged[fontPath] = struct{}{}
		switch {
		case resolved == "":
			r.logger.Warn("no emoji font found; rendering will produce blank glyphs",
				zap.String("configured", fontPath))
		case resolved != fontPath:
			r.logger.Info("configured font not found, using resolved path",
				zap.String("configured", fontPath),
				zap.String("resolved", resolved))
		default:
			r.logger.Info("emoji font resolved", zap.String("path", resolved))
		}
	}

	return resolved
}
