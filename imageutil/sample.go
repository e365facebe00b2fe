package imageutil

// PrepareForSampling shrinks and denoises an image before pixel
// sampling. The image is resized so its longest side is at most
// maxDim, then lightly blurred so compression artifacts and sensor
// noise do not seed spurious palette clusters.
func PrepareForSampling(img *RGBAImage, maxDim int) *RGBAImage {
	if maxDim <= 0 {
		maxDim = 256
	}
	return GaussianBlur(ResizeToFit(img, maxDim, InterpolationArea))
}

// SamplePixels collects every stride-th pixel on a regular grid.
// A stride of 1 returns every pixel.
func SamplePixels(img *RGBAImage, stride int) []RGB {
	if stride < 1 {
		stride = 1
	}
	w, h := img.Width(), img.Height()
	samples := make([]RGB, 0, (w/stride+1)*(h/stride+1))
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			samples = append(samples, img.GetRGB(x, y))
		}
	}
	return samples
}

// SamplePixelsMax collects at most maxSamples pixels on a regular
// grid, choosing the smallest stride that stays under the cap.
func SamplePixelsMax(img *RGBAImage, maxSamples int) []RGB {
	if maxSamples <= 0 {
		maxSamples = 4096
	}
	stride := 1
	for (img.Width()/stride+1)*(img.Height()/stride+1) > maxSamples {
		stride++
	}
	samples := SamplePixels(img, stride)
	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
