package paintmix

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/wbrown/paintmix/imageutil"
)

// SampleImage loads an image and reduces it to a pixel sample set
// suitable for ExtractPalette, using the pure Go pipeline: decode,
// fit under maxDim, light blur, grid sampling capped at maxSamples.
func SampleImage(path string, maxDim, maxSamples int) ([]RGB, error) {
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, err
	}
	prepared := imageutil.PrepareForSampling(img, maxDim)
	return convertSamples(imageutil.SamplePixelsMax(prepared, maxSamples)), nil
}

func convertSamples(in []imageutil.RGB) []RGB {
	out := make([]RGB, len(in))
	for i, s := range in {
		out[i] = RGB{R: s.R, G: s.G, B: s.B}
	}
	return out
}

// SampleImageGoCV is the OpenCV-backed equivalent of SampleImage for
// builds where gocv is available. It reads more formats and resizes
// with INTER_AREA, which OpenCV implements as a true box filter.
func SampleImageGoCV(path string, maxDim, maxSamples int) ([]RGB, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return nil, fmt.Errorf("failed to read image: %s", path)
	}
	defer func() { mat.Close() }()

	if maxDim <= 0 {
		maxDim = 256
	}
	rows, cols := mat.Rows(), mat.Cols()
	if rows > maxDim || cols > maxDim {
		scale := float64(maxDim) / float64(rows)
		if cols > rows {
			scale = float64(maxDim) / float64(cols)
		}
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized,
			image.Point{X: int(float64(cols) * scale), Y: int(float64(rows) * scale)},
			0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	blurred := gocv.NewMat()
	gocv.GaussianBlur(mat, &blurred, image.Pt(3, 3), 0, 0, gocv.BorderDefault)
	mat.Close()
	mat = blurred

	if maxSamples <= 0 {
		maxSamples = 4096
	}
	rows, cols = mat.Rows(), mat.Cols()
	stride := 1
	for (cols/stride+1)*(rows/stride+1) > maxSamples {
		stride++
	}

	samples := make([]RGB, 0, maxSamples)
	for y := 0; y < rows; y += stride {
		for x := 0; x < cols; x += stride {
			if len(samples) >= maxSamples {
				return samples, nil
			}
			// OpenCV stores channels as BGR
			v := mat.GetVecbAt(y, x)
			samples = append(samples, RGB{R: v[2], G: v[1], B: v[0]})
		}
	}
	return samples, nil
}
