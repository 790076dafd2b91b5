// Package glyph renders a single Unicode emoji character to a square
// transparent raster image for use as a diffusion conditioning input.
package glyph

import "errors"

// Sentinel errors for glyph rendering operations.
var (
	// ErrBlankGlyph means the rendered image has no visible pixels: the
	// resolved font cannot draw this emoji.
	ErrBlankGlyph = errors.New("glyph: rendered emoji has no visible pixels")

	// ErrFontNotFound means no usable emoji font could be resolved from
	// the configured path, the known system locations, or fc-match.
	ErrFontNotFound = errors.New("glyph: no emoji font found")

	// ErrFontLoadFailed means a font file exists but could not be parsed.
	ErrFontLoadFailed = errors.New("glyph: failed to load font")
)
