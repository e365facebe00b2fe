package paintmix

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func randomLABPoints(rng *rand.Rand, n int) []labPoint {
	points := make([]labPoint, n)
	for i := range points {
		points[i] = labPoint{
			Index: i,
			Color: LAB{
				L: rng.Float64() * 100,
				A: rng.Float64()*200 - 100,
				B: rng.Float64()*200 - 100,
			},
		}
	}
	return points
}

func bruteNearest(points []labPoint, target LAB) int {
	best, bestDist := -1, math.MaxFloat64
	for _, p := range points {
		if d := DeltaE76(p.Color, target); d < bestDist {
			best, bestDist = p.Index, d
		}
	}
	return best
}

func TestLABTreeNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := randomLABPoints(rng, 200)
	// buildLABTree reorders its input; give it a copy.
	tree := buildLABTree(append([]labPoint(nil), points...), 0)

	for i := 0; i < 100; i++ {
		target := LAB{
			L: rng.Float64() * 100,
			A: rng.Float64()*200 - 100,
			B: rng.Float64()*200 - 100,
		}
		want := bruteNearest(points, target)
		got, _ := tree.nearest(target, -1, math.MaxFloat64)
		if DeltaE76(points[got].Color, target) != DeltaE76(points[want].Color, target) {
			t.Fatalf("query %d: tree found index %d (dist %v), brute force %d (dist %v)",
				i, got, DeltaE76(points[got].Color, target),
				want, DeltaE76(points[want].Color, target))
		}
	}
}

func TestLABTreeKNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := randomLABPoints(rng, 100)
	tree := buildLABTree(append([]labPoint(nil), points...), 0)

	const k = 8
	for i := 0; i < 50; i++ {
		target := LAB{
			L: rng.Float64() * 100,
			A: rng.Float64()*200 - 100,
			B: rng.Float64()*200 - 100,
		}

		got := tree.kNearest(target, k)
		if len(got) != k {
			t.Fatalf("kNearest returned %d results, want %d", len(got), k)
		}

		sorted := append([]labPoint(nil), points...)
		sort.Slice(sorted, func(a, b int) bool {
			return DeltaE76(sorted[a].Color, target) < DeltaE76(sorted[b].Color, target)
		})
		for j := 0; j < k; j++ {
			wantDist := DeltaE76(sorted[j].Color, target)
			gotDist := DeltaE76(points[got[j]].Color, target)
			if math.Abs(wantDist-gotDist) > 1e-9 {
				t.Fatalf("query %d rank %d: got dist %v, want %v", i, j, gotDist, wantDist)
			}
		}
	}
}

func TestLABTreeSmallInputs(t *testing.T) {
	if tree := buildLABTree(nil, 0); tree != nil {
		t.Error("empty input should build a nil tree")
	}

	single := []labPoint{{Index: 3, Color: LAB{50, 0, 0}}}
	tree := buildLABTree(single, 0)
	got, _ := tree.nearest(LAB{10, 10, 10}, -1, math.MaxFloat64)
	if got != 3 {
		t.Errorf("single-node nearest = %d, want 3", got)
	}

	if res := tree.kNearest(LAB{0, 0, 0}, 5); len(res) != 1 || res[0] != 3 {
		t.Errorf("kNearest on single node = %v, want [3]", res)
	}
	if res := tree.kNearest(LAB{0, 0, 0}, 0); res != nil {
		t.Errorf("kNearest with k=0 = %v, want nil", res)
	}
}
