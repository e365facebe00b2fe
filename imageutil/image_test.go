package imageutil

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestRGBAImageAccessors(t *testing.T) {
	img := NewRGBAImage(4, 3)
	if img.Width() != 4 || img.Height() != 3 {
		t.Fatalf("dimensions = %dx%d, want 4x3", img.Width(), img.Height())
	}

	c := RGB{10, 20, 30}
	img.SetRGB(2, 1, c)
	if got := img.GetRGB(2, 1); got != c {
		t.Errorf("GetRGB = %v, want %v", got, c)
	}
}

func TestClone(t *testing.T) {
	img := CreateSolidImage(4, 4, RGB{100, 100, 100})
	clone := img.Clone()
	clone.SetRGB(0, 0, RGB{1, 2, 3})
	if img.GetRGB(0, 0) != (RGB{100, 100, 100}) {
		t.Error("mutating the clone changed the original")
	}
}

func TestRGBFromColor(t *testing.T) {
	c := RGB{200, 150, 100}
	if got := RGBFromColor(c.ToColor()); got != c {
		t.Errorf("round trip = %v, want %v", got, c)
	}
}

func TestResize(t *testing.T) {
	img := CreateSolidImage(100, 50, RGB{80, 120, 160})
	small := Resize(img, 10, 5, InterpolationArea)
	if small.Width() != 10 || small.Height() != 5 {
		t.Fatalf("resized to %dx%d, want 10x5", small.Width(), small.Height())
	}
	// A solid color survives any interpolation within rounding.
	got := small.GetRGB(5, 2)
	if absDiff(got.R, 80) > 1 || absDiff(got.G, 120) > 1 || absDiff(got.B, 160) > 1 {
		t.Errorf("resized solid color = %v, want about {80 120 160}", got)
	}
}

func TestResizeToFit(t *testing.T) {
	img := CreateSolidImage(400, 200, RGB{50, 50, 50})
	fit := ResizeToFit(img, 100, InterpolationArea)
	if fit.Width() != 100 || fit.Height() != 50 {
		t.Errorf("fit to %dx%d, want 100x50", fit.Width(), fit.Height())
	}

	small := CreateSolidImage(40, 20, RGB{50, 50, 50})
	if got := ResizeToFit(small, 100, InterpolationArea); got != small {
		t.Error("image already within bound was resized")
	}
}

func TestGaussianBlurPreservesSolid(t *testing.T) {
	img := CreateSolidImage(10, 10, RGB{90, 90, 90})
	blurred := GaussianBlur(img)
	if got := blurred.GetRGB(5, 5); absDiff(got.R, 90) > 1 {
		t.Errorf("blurred solid = %v, want about 90", got)
	}
}

func TestGaussianBlurSmoothsCheckerboard(t *testing.T) {
	img := CreateCheckerboardImage(16, 16, 1)
	blurred := GaussianBlur(img)
	// A 1px checkerboard blurs toward mid-gray away from borders.
	got := blurred.GetRGB(8, 8)
	if got.R < 64 || got.R > 192 {
		t.Errorf("blurred checkerboard center = %v, want mid range", got)
	}
}

func TestSamplePixels(t *testing.T) {
	img := CreateSolidImage(10, 10, RGB{1, 2, 3})
	all := SamplePixels(img, 1)
	if len(all) != 100 {
		t.Fatalf("stride 1 sampled %d pixels, want 100", len(all))
	}
	for _, s := range all {
		if s != (RGB{1, 2, 3}) {
			t.Fatalf("sample = %v, want {1 2 3}", s)
		}
	}

	strided := SamplePixels(img, 2)
	if len(strided) != 25 {
		t.Errorf("stride 2 sampled %d pixels, want 25", len(strided))
	}
}

func TestSamplePixelsMax(t *testing.T) {
	img := CreateGradientImage(64, 64)
	samples := SamplePixelsMax(img, 100)
	if len(samples) == 0 || len(samples) > 100 {
		t.Errorf("sampled %d pixels, want between 1 and 100", len(samples))
	}
}

func TestPrepareForSampling(t *testing.T) {
	img := CreateColorBarsImage(512, 256)
	prepared := PrepareForSampling(img, 128)
	if prepared.Width() > 128 || prepared.Height() > 128 {
		t.Errorf("prepared size %dx%d exceeds 128", prepared.Width(), prepared.Height())
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")

	img := CreateColorBarsImage(32, 16)
	if err := SaveImage(img.RGBA, path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if loaded.Width() != 32 || loaded.Height() != 16 {
		t.Fatalf("loaded %dx%d, want 32x16", loaded.Width(), loaded.Height())
	}
	if mse := CalculateMSE(img, loaded); mse > 0 {
		t.Errorf("PNG round trip MSE = %v, want 0", mse)
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestSaveImageByExtension(t *testing.T) {
	dir := t.TempDir()
	img := CreateSolidImage(8, 8, RGB{10, 20, 30})

	for _, name := range []string{"out.png", "out.jpg", "out.gif"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(img.RGBA, path); err != nil {
			t.Errorf("SaveImage(%s): %v", name, err)
			continue
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("SaveImage(%s) wrote nothing", name)
		}
	}
}

func TestRGBAImageFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 2, 6, 5))
	wrapped := RGBAImageFromImage(src)
	if wrapped.Width() != 4 || wrapped.Height() != 3 {
		t.Errorf("converted %dx%d, want 4x3 with origin reset", wrapped.Width(), wrapped.Height())
	}
}

func absDiff(a uint8, b int) int {
	d := int(a) - b
	if d < 0 {
		return -d
	}
	return d
}
