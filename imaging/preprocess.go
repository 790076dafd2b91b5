package imaging

import (
	"image"
	"image/color"
	stddraw "image/draw"

	"golang.org/x/image/draw"
)

// ResizeSquare scales an image to a size×size square using high-quality
// CatmullRom interpolation. The input is assumed to already be square;
// non-square inputs are stretched rather than letterboxed.
func ResizeSquare(img image.Image, size int) *image.RGBA {
	if size <= 0 {
		size = 1
	}

	bounds := img.Bounds()
	if bounds.Dx() == size && bounds.Dy() == size {
		return ToRGBA(img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// FlattenToWhite composites an image onto an opaque white background,
// producing the RGB conditioning image handed to the diffusion pipeline.
// Transparent pixels would otherwise be collapsed to black by the
// pipeline's own preprocessing, erasing the glyph shape, so this step is
// mandatory before conditioning.
func FlattenToWhite(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	white := image.NewUniform(color.White)
	stddraw.Draw(dst, dst.Bounds(), white, image.Point{}, stddraw.Src)
	stddraw.Draw(dst, dst.Bounds(), img, bounds.Min, stddraw.Over)

	return dst
}

// ToRGBA converts any image to RGBA format. If the image is already RGBA,
// it is returned unchanged.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	stddraw.Draw(dst, dst.Bounds(), img, bounds.Min, stddraw.Src)
	return dst
}

// ToNRGBA converts any image to NRGBA (non-premultiplied) format.
// Alpha operations such as BlendAlpha require non-premultiplied channels.
func ToNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba
	}

	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	stddraw.Draw(dst, dst.Bounds(), img, bounds.Min, stddraw.Src)
	return dst
}
