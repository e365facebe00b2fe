package paintmix

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractPaletteSingleColor(t *testing.T) {
	samples := make([]RGB, 50)
	for i := range samples {
		samples[i] = RGB{200, 50, 50}
	}

	clusters := ExtractPalette(samples, 1, 20, rand.New(rand.NewSource(1)))
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	c := clusters[0]
	if c.Count != 50 {
		t.Errorf("count = %d, want 50", c.Count)
	}
	if c.Percentage != 100 {
		t.Errorf("percentage = %v, want 100", c.Percentage)
	}
	if absInt(int(c.Centroid.R)-200) > 1 ||
		absInt(int(c.Centroid.G)-50) > 1 ||
		absInt(int(c.Centroid.B)-50) > 1 {
		t.Errorf("centroid = %v, want about {200 50 50}", c.Centroid)
	}
}

func TestExtractPaletteSingleClusterMean(t *testing.T) {
	// K=1 converges to the arithmetic mean of the samples, so a
	// half-black half-white set lands on mid gray.
	var samples []RGB
	for i := 0; i < 50; i++ {
		samples = append(samples, RGB{0, 0, 0}, RGB{255, 255, 255})
	}

	clusters := ExtractPalette(samples, 1, 20, rand.New(rand.NewSource(4)))
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	c := clusters[0]
	if c.Count != 100 {
		t.Errorf("count = %d, want 100", c.Count)
	}
	if absInt(int(c.Centroid.R)-128) > 1 ||
		absInt(int(c.Centroid.G)-128) > 1 ||
		absInt(int(c.Centroid.B)-128) > 1 {
		t.Errorf("centroid = %v, want the channel mean of about 128", c.Centroid)
	}
}

func TestExtractPaletteSeparatesDistinctColors(t *testing.T) {
	var samples []RGB
	for i := 0; i < 60; i++ {
		samples = append(samples, RGB{250, 10, 10})
	}
	for i := 0; i < 30; i++ {
		samples = append(samples, RGB{10, 10, 250})
	}
	for i := 0; i < 10; i++ {
		samples = append(samples, RGB{10, 250, 10})
	}

	clusters := ExtractPalette(samples, 3, 20, rand.New(rand.NewSource(2)))
	if len(clusters) != 3 {
		t.Fatalf("got %d clusters, want 3", len(clusters))
	}

	// Ordered by population: red, blue, green.
	if clusters[0].Count != 60 || clusters[1].Count != 30 || clusters[2].Count != 10 {
		t.Errorf("counts = %d, %d, %d; want 60, 30, 10",
			clusters[0].Count, clusters[1].Count, clusters[2].Count)
	}
	if clusters[0].Centroid.R < 200 {
		t.Errorf("largest cluster centroid %v is not red", clusters[0].Centroid)
	}

	total := 0
	for _, c := range clusters {
		total += c.Count
	}
	if total != len(samples) {
		t.Errorf("cluster counts sum to %d, want %d", total, len(samples))
	}
}

func TestExtractPaletteDeterministicWithSeed(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	samples := make([]RGB, 300)
	for i := range samples {
		samples[i] = RGB{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
	}

	a := ExtractPalette(samples, 5, 20, rand.New(rand.NewSource(7)))
	b := ExtractPalette(samples, 5, 20, rand.New(rand.NewSource(7)))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different palettes (-first +second):\n%s", diff)
	}
}

func TestExtractPaletteDegenerateInputs(t *testing.T) {
	if got := ExtractPalette(nil, 3, 20, nil); got != nil {
		t.Errorf("nil samples returned %v", got)
	}
	if got := ExtractPalette([]RGB{{1, 2, 3}}, 0, 20, nil); got != nil {
		t.Errorf("k=0 returned %v", got)
	}

	// More clusters than samples collapses to one per sample.
	got := ExtractPalette([]RGB{{255, 0, 0}, {0, 0, 255}}, 5, 20, rand.New(rand.NewSource(3)))
	if len(got) > 2 {
		t.Errorf("got %d clusters from 2 samples", len(got))
	}
}
