// Package imaging provides the shared raster atoms used by the glyph
// renderer, diffusion engine and matting stages: PNG codec helpers,
// square resizing, conditioning-image flattening and alpha operations.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
)

// PNG magic bytes for file identification
var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Image codec errors
var (
	ErrImageEmpty      = errors.New("imaging: image data is empty")
	ErrImageNotPNG     = errors.New("imaging: image data is not a valid PNG")
	ErrImageTooSmall   = errors.New("imaging: image data too small to be valid")
	ErrImageDecodeFail = errors.New("imaging: failed to decode image")
	ErrInvalidSize     = errors.New("imaging: invalid image dimensions")
)

// IsPNG checks if the given data starts with PNG magic bytes.
// This is a pure function with no side effects.
func IsPNG(data []byte) bool {
	if len(data) < len(pngMagic) {
		return false
	}
	return bytes.Equal(data[:len(pngMagic)], pngMagic)
}

// ValidatePNG validates that data is a well-formed PNG image.
// Returns nil if valid, error otherwise.
func ValidatePNG(data []byte) error {
	if len(data) == 0 {
		return ErrImageEmpty
	}

	// Minimum PNG file size (signature + IHDR + IEND chunks)
	if len(data) < 45 {
		return ErrImageTooSmall
	}

	if !IsPNG(data) {
		return ErrImageNotPNG
	}

	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrImageDecodeFail, err)
	}

	return nil
}

// DecodePNG decodes PNG data into an image.
func DecodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrImageEmpty
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecodeFail, err)
	}

	return img, nil
}

// EncodePNG encodes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrImageEmpty
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imaging: png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePNG encodes an image as PNG to the given writer.
func WritePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return ErrImageEmpty
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imaging: png encode: %w", err)
	}
	return nil
}
