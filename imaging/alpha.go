package imaging

import (
	"image"
	"math"
)

// BlendAlpha blends a matte's alpha channel toward full opacity:
//
//	alpha' = round(255*(1-strength) + alpha*strength)
//
// At strength 1.0 the matte is applied unchanged; at 0.0 the result is
// fully opaque regardless of the matte. Strength is clamped to [0, 1].
// Returns a new image; the input is not modified.
func BlendAlpha(img image.Image, strength float64) *image.NRGBA {
	if strength < 0 {
		strength = 0
	}
	if strength > 1 {
		strength = 1
	}

	src := ToNRGBA(img)
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	copy(dst.Pix, src.Pix)

	keep := 255.0 * (1.0 - strength)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(math.Round(keep + float64(dst.Pix[i])*strength))
	}

	return dst
}

// AlphaBounds returns the bounding box of pixels with nonzero alpha and
// whether any such pixel exists. A false second return means the image is
// fully transparent (a blank glyph).
func AlphaBounds(img image.Image) (image.Rectangle, bool) {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// AlphaCoverage returns the fraction of total possible alpha that is set,
// used by the renderer's trace output.
func AlphaCoverage(img image.Image) float64 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	var sum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			sum += uint64(a >> 8)
		}
	}

	return float64(sum) / float64(total*255)
}
