package paintmix

import (
	"container/heap"
	"math"
	"sort"
)

// labPoint ties a catalog paint index to its LAB color for spatial
// indexing.
type labPoint struct {
	Index int
	Color LAB
}

// labNode is a node in a KD-tree over LAB space. The tree accelerates
// nearest-paint and shortlist queries used by the ternary pass and the
// heuristics; distances are plain Euclidean (DeltaE76).
type labNode struct {
	Point       labPoint
	Left, Right *labNode
	SplitAxis   int
}

// buildLABTree constructs a KD-tree from catalog points. The splitting
// axis at each level is the dimension with the largest variance, which
// keeps the tree balanced for catalogs that cluster along one axis
// (most oil catalogs cluster in L).
func buildLABTree(points []labPoint, depth int) *labNode {
	if len(points) == 0 {
		return nil
	}

	axis := chooseLABSplitAxis(points)
	sort.Slice(points, func(i, j int) bool {
		return labComponent(points[i].Color, axis) <
			labComponent(points[j].Color, axis)
	})

	median := len(points) / 2
	return &labNode{
		Point:     points[median],
		Left:      buildLABTree(append([]labPoint(nil), points[:median]...), depth+1),
		Right:     buildLABTree(append([]labPoint(nil), points[median+1:]...), depth+1),
		SplitAxis: axis,
	}
}

// chooseLABSplitAxis selects the axis with the largest variance.
func chooseLABSplitAxis(points []labPoint) int {
	var mean, variance [3]float64
	for _, p := range points {
		mean[0] += p.Color.L
		mean[1] += p.Color.A
		mean[2] += p.Color.B
	}
	n := float64(len(points))
	for i := range mean {
		mean[i] /= n
	}
	for _, p := range points {
		variance[0] += math.Pow(p.Color.L-mean[0], 2)
		variance[1] += math.Pow(p.Color.A-mean[1], 2)
		variance[2] += math.Pow(p.Color.B-mean[2], 2)
	}

	if variance[0] >= variance[1] && variance[0] >= variance[2] {
		return 0
	}
	if variance[1] >= variance[2] {
		return 1
	}
	return 2
}

func labComponent(c LAB, axis int) float64 {
	switch axis {
	case 0:
		return c.L
	case 1:
		return c.A
	default:
		return c.B
	}
}

// nearest finds the catalog index nearest to the target, returning
// the best index and distance found so far. Call with best=-1 and
// bestDist=math.MaxFloat64 at the root.
func (node *labNode) nearest(target LAB, best int, bestDist float64) (int, float64) {
	if node == nil {
		return best, bestDist
	}

	dist := DeltaE76(node.Point.Color, target)
	if dist < bestDist {
		best = node.Point.Index
		bestDist = dist
	}

	axisDist := labComponent(target, node.SplitAxis) -
		labComponent(node.Point.Color, node.SplitAxis)

	next, other := node.Left, node.Right
	if axisDist >= 0 {
		next, other = node.Right, node.Left
	}

	best, bestDist = next.nearest(target, best, bestDist)
	if axisDist*axisDist < bestDist*bestDist {
		best, bestDist = other.nearest(target, best, bestDist)
	}
	return best, bestDist
}

// paintDistance is a helper pair for the k-nearest priority queue.
type paintDistance struct {
	index    int
	distance float64
}

// farthestFirst is a max-heap of paintDistance keyed on distance, so
// the current worst candidate sits at the root and is cheap to evict.
type farthestFirst []paintDistance

func (pq farthestFirst) Len() int            { return len(pq) }
func (pq farthestFirst) Less(i, j int) bool  { return pq[i].distance > pq[j].distance }
func (pq farthestFirst) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *farthestFirst) Push(x interface{}) { *pq = append(*pq, x.(paintDistance)) }
func (pq *farthestFirst) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// kNearest finds up to k catalog indices closest to the target,
// ordered nearest first.
func (node *labNode) kNearest(target LAB, k int) []int {
	if node == nil || k <= 0 {
		return nil
	}

	pq := make(farthestFirst, 0, k)
	heap.Init(&pq)

	var search func(*labNode)
	search = func(n *labNode) {
		if n == nil {
			return
		}

		dist := DeltaE76(n.Point.Color, target)
		if pq.Len() < k {
			heap.Push(&pq, paintDistance{n.Point.Index, dist})
		} else if dist < pq[0].distance {
			heap.Pop(&pq)
			heap.Push(&pq, paintDistance{n.Point.Index, dist})
		}

		axisDist := labComponent(target, n.SplitAxis) -
			labComponent(n.Point.Color, n.SplitAxis)

		first, second := n.Left, n.Right
		if axisDist >= 0 {
			first, second = n.Right, n.Left
		}

		search(first)
		if pq.Len() < k || axisDist*axisDist < pq[0].distance*pq[0].distance {
			search(second)
		}
	}
	search(node)

	result := make([]int, pq.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&pq).(paintDistance).index
	}
	return result
}
