package paintmix

import "sort"

// rankRecipes sorts, deduplicates, and truncates a recipe pool.
//
// Sorting is by match percentage descending with an epsilon tie-break
// that prefers fewer components: a one-paint match beats a two-paint
// match at equal quality. The sort is stable so equally good recipes
// keep their discovery order.
//
// Deduplication runs after the sort and is by the unordered set of
// paint identities: two recipes using the same paints at different
// proportions are the same suggestion to a painter, so only the
// highest-scoring variant of each set survives. The ordering matters:
// the coarse ratio ladder discovers a pair long before the fine
// ladders and the advisors refine it, so deduplicating in discovery
// order would throw the refined variants away.
func rankRecipes(pool []Recipe, topK int) []Recipe {
	sorted := make([]Recipe, 0, len(pool))
	for _, r := range pool {
		if len(r.Components) == 0 {
			continue
		}
		sorted = append(sorted, r)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		di := sorted[i].MatchPercentage
		dj := sorted[j].MatchPercentage
		if absFloat(di-dj) < epsilon {
			return len(sorted[i].Components) < len(sorted[j].Components)
		}
		return di > dj
	})

	seen := make(map[string]bool, len(sorted))
	unique := make([]Recipe, 0, len(sorted))
	for _, r := range sorted {
		key := r.paintSetKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}

	if topK > 0 && len(unique) > topK {
		unique = unique[:topK]
	}
	return unique
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
