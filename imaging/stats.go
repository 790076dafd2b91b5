package imaging

import (
	"image"
	"math"
)

// Stats summarizes the luminance distribution of a conditioning image.
// It is used to detect ineffective conditioning (blank or near-uniform
// inputs) before an expensive diffusion call.
type Stats struct {
	// MeanLuminance is the average gray value (0-255).
	MeanLuminance float64

	// StddevLuminance is the standard deviation of gray values.
	StddevLuminance float64

	// MinLuminance and MaxLuminance are the gray-value extrema.
	MinLuminance int
	MaxLuminance int

	// NonWhiteRatio is the fraction of pixels with gray value <= 250.
	NonWhiteRatio float64
}

// Weak-conditioning thresholds: below either, the glyph is effectively
// invisible to the pipeline and output will follow the prompt alone.
const (
	WeakNonWhiteRatio = 0.001
	WeakStddev        = 1.0
)

// IsWeak reports whether the image is too uniform to steer generation.
func (s Stats) IsWeak() bool {
	return s.NonWhiteRatio < WeakNonWhiteRatio || s.StddevLuminance < WeakStddev
}

// ComputeStats calculates luminance statistics over an image using the
// ITU-R 601-2 gray transform (0.299 R + 0.587 G + 0.114 B).
// This is a pure function with no side effects.
func ComputeStats(img image.Image) Stats {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return Stats{}
	}

	var sum, sumSq float64
	nonWhite := 0
	minL, maxL := 255, 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray := int((299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000)

			sum += float64(gray)
			sumSq += float64(gray) * float64(gray)
			if gray <= 250 {
				nonWhite++
			}
			if gray < minL {
				minL = gray
			}
			if gray > maxL {
				maxL = gray
			}
		}
	}

	n := float64(total)
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}

	return Stats{
		MeanLuminance:   mean,
		StddevLuminance: math.Sqrt(variance),
		MinLuminance:    minL,
		MaxLuminance:    maxL,
		NonWhiteRatio:   float64(nonWhite) / n,
	}
}
