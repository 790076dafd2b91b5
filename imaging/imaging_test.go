package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestIsPNG(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"valid magic", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, true},
		{"jpeg magic", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}, false},
		{"too short", []byte{0x89, 0x50}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPNG(tt.data); got != tt.want {
				t.Errorf("IsPNG() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := solidImage(8, 8, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if err := ValidatePNG(data); err != nil {
		t.Fatalf("ValidatePNG rejected encoded image: %v", err)
	}

	img, err := DecodePNG(data)
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded size = %v, want 8x8", img.Bounds())
	}
}

func TestValidatePNG_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrImageEmpty},
		{"too small", []byte{0x89, 0x50, 0x4E, 0x47}, ErrImageTooSmall},
		{"not png", make([]byte, 64), ErrImageNotPNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePNG(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidatePNG() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResizeSquare(t *testing.T) {
	src := solidImage(16, 16, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	dst := ResizeSquare(src, 64)
	if dst.Bounds().Dx() != 64 || dst.Bounds().Dy() != 64 {
		t.Errorf("resized bounds = %v, want 64x64", dst.Bounds())
	}

	// Same-size input should pass through without scaling artifacts.
	same := ResizeSquare(src, 16)
	r, g, b, _ := same.At(8, 8).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("same-size pixel = (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}

func TestFlattenToWhite(t *testing.T) {
	// Transparent image with one opaque black pixel in the center.
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.Set(2, 2, color.NRGBA{A: 255})

	flat := FlattenToWhite(src)

	r, g, b, a := flat.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("transparent pixel flattened to (%d,%d,%d,%d), want opaque white",
			r>>8, g>>8, b>>8, a>>8)
	}

	r, g, b, a = flat.At(2, 2).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 0 || a>>8 != 255 {
		t.Errorf("opaque pixel flattened to (%d,%d,%d,%d), want opaque black",
			r>>8, g>>8, b>>8, a>>8)
	}
}

func TestComputeStats_WeakDetection(t *testing.T) {
	allWhite := solidImage(32, 32, color.White)
	stats := ComputeStats(allWhite)
	if !stats.IsWeak() {
		t.Errorf("all-white image not flagged weak: %+v", stats)
	}
	if stats.NonWhiteRatio != 0 {
		t.Errorf("all-white NonWhiteRatio = %f, want 0", stats.NonWhiteRatio)
	}

	// Half black, half white has strong contrast.
	half := solidImage(32, 32, color.White)
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			half.Set(x, y, color.Black)
		}
	}
	stats = ComputeStats(half)
	if stats.IsWeak() {
		t.Errorf("half-black image flagged weak: %+v", stats)
	}
	if stats.NonWhiteRatio != 0.5 {
		t.Errorf("half-black NonWhiteRatio = %f, want 0.5", stats.NonWhiteRatio)
	}
	if stats.MinLuminance != 0 || stats.MaxLuminance != 255 {
		t.Errorf("extrema = (%d,%d), want (0,255)", stats.MinLuminance, stats.MaxLuminance)
	}
}

func TestBlendAlpha(t *testing.T) {
	tests := []struct {
		name     string
		alpha    uint8
		strength float64
		want     uint8
	}{
		{"full strength keeps matte", 100, 1.0, 100},
		{"zero strength forces opaque", 100, 0.0, 255},
		{"half strength averages", 100, 0.5, 178}, // round((255+100)/2)
		{"half strength on zero", 0, 0.5, 128},    // round(127.5)
		{"clamped above one", 100, 2.0, 100},
		{"clamped below zero", 100, -1.0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := solidImage(2, 2, color.NRGBA{R: 9, G: 8, B: 7, A: tt.alpha})
			out := BlendAlpha(src, tt.strength)

			c := out.NRGBAAt(1, 1)
			if c.A != tt.want {
				t.Errorf("alpha = %d, want %d", c.A, tt.want)
			}
			if c.R != 9 || c.G != 8 || c.B != 7 {
				t.Errorf("color channels changed: %+v", c)
			}
		})
	}
}

func TestBlendAlpha_DoesNotMutateInput(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{A: 100})
	_ = BlendAlpha(src, 0.0)
	if src.NRGBAAt(0, 0).A != 100 {
		t.Error("BlendAlpha mutated its input")
	}
}

func TestAlphaBounds(t *testing.T) {
	blank := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if _, ok := AlphaBounds(blank); ok {
		t.Error("blank image reported visible pixels")
	}

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.Set(2, 3, color.NRGBA{A: 255})
	img.Set(5, 6, color.NRGBA{A: 10})

	box, ok := AlphaBounds(img)
	if !ok {
		t.Fatal("expected visible pixels")
	}
	want := image.Rect(2, 3, 6, 7)
	if box != want {
		t.Errorf("AlphaBounds = %v, want %v", box, want)
	}
}

func TestAlphaCoverage(t *testing.T) {
	opaque := solidImage(4, 4, color.NRGBA{R: 1, G: 1, B: 1, A: 255})
	if cov := AlphaCoverage(opaque); cov < 0.99 {
		t.Errorf("opaque coverage = %f, want ~1.0", cov)
	}

	blank := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if cov := AlphaCoverage(blank); cov != 0 {
		t.Errorf("blank coverage = %f, want 0", cov)
	}
}
