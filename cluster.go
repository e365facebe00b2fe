package paintmix

import (
	"math/rand"
	"sort"
	"time"
)

// Cluster is one dominant color extracted from an image sample set.
type Cluster struct {
	Centroid   RGB
	Count      int
	Percentage float64
}

// rgbPoint is a sample lifted to float channels so centroid means do
// not accumulate rounding error.
type rgbPoint struct {
	R, G, B float64
}

func (p rgbPoint) sqDist(q rgbPoint) float64 {
	dr := p.R - q.R
	dg := p.G - q.G
	db := p.B - q.B
	return dr*dr + dg*dg + db*db
}

// ExtractPalette reduces a pixel sample set to its k dominant colors
// using Lloyd's k-means over RGB space with Euclidean distance, so a
// single cluster converges to the arithmetic mean of its samples.
// Results are ordered by population, largest cluster first.
//
// A nil rng seeds from the clock; pass a seeded source for
// reproducible palettes. Fewer distinct samples than k yields fewer
// clusters. maxIter caps the refinement loop; 20 is plenty for
// palette work.
func ExtractPalette(samples []RGB, k, maxIter int, rng *rand.Rand) []Cluster {
	if len(samples) == 0 || k <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if maxIter <= 0 {
		maxIter = 20
	}
	if k > len(samples) {
		k = len(samples)
	}

	points := make([]rgbPoint, len(samples))
	for i, s := range samples {
		points[i] = rgbPoint{R: float64(s.R), G: float64(s.G), B: float64(s.B)}
	}

	centroids := make([]rgbPoint, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		centroids[i] = points[idx]
	}

	assignment := make([]int, len(points))
	counts := make([]int, k)
	reseeded := false

	for iter := 0; iter < maxIter; iter++ {
		moved := false
		for i, p := range points {
			best, bestDist := 0, p.sqDist(centroids[0])
			for c := 1; c < k; c++ {
				if d := p.sqDist(centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				moved = true
			}
		}
		// A reseed invalidates the convergence check: the reseeded
		// centroid has not been assigned to yet.
		if iter > 0 && !moved && !reseeded {
			break
		}
		reseeded = false

		sums := make([]rgbPoint, k)
		for i := range counts {
			counts[i] = 0
		}
		for i, p := range points {
			c := assignment[i]
			sums[c].R += p.R
			sums[c].G += p.G
			sums[c].B += p.B
			counts[c]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Reseed an empty cluster on a random sample so k
				// colors still come out of a lopsided image.
				centroids[c] = points[rng.Intn(len(points))]
				reseeded = true
				continue
			}
			n := float64(counts[c])
			centroids[c] = rgbPoint{
				R: sums[c].R / n,
				G: sums[c].G / n,
				B: sums[c].B / n,
			}
		}
	}

	total := float64(len(points))
	clusters := make([]Cluster, 0, k)
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		clusters = append(clusters, Cluster{
			Centroid: RGB{
				R: clampChannel(centroids[c].R),
				G: clampChannel(centroids[c].G),
				B: clampChannel(centroids[c].B),
			},
			Count:      counts[c],
			Percentage: float64(counts[c]) / total * 100,
		})
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Count > clusters[j].Count
	})
	return clusters
}
