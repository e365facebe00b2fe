package paintmix

import "math"

// recipeCache is a map of quantized LAB targets to previously ranked
// recipe lists. Targets that quantize to the same key are close enough
// that the cached recipes are usually still the right answer; on a
// hit the cached recipes are re-scored against the exact target and
// only accepted when the best of them still clears the quality bar,
// otherwise the search runs in full and replaces the entry.
type recipeCache map[labKey]cacheEntry

// labKey is a LAB color quantized to cacheQuantum-sized cells.
type labKey struct {
	L, A, B int16
}

type cacheEntry struct {
	Recipes []Recipe
}

// cacheQuantum is the cell size of the cache key in LAB units. Two
// targets within the same cell differ by at most ~3.5 dE76, which is
// below most people's mixing tolerance.
const cacheQuantum = 2.0

func quantizeLAB(c LAB) labKey {
	// Floor rather than truncate: truncation would fold the cells on
	// either side of zero into one double-width cell on each axis.
	return labKey{
		L: int16(math.Floor(c.L / cacheQuantum)),
		A: int16(math.Floor(c.A / cacheQuantum)),
		B: int16(math.Floor(c.B / cacheQuantum)),
	}
}

// addCacheEntry stores the ranked recipes for the target's cell,
// replacing any previous entry.
func (m *Matcher) addCacheEntry(target LAB, recipes []Recipe) {
	if m.cache == nil {
		return
	}
	stored := make([]Recipe, len(recipes))
	copy(stored, recipes)
	m.cache[quantizeLAB(target)] = cacheEntry{Recipes: stored}
}

// getCacheEntry retrieves recipes for the target's cell, re-scored
// against the exact target. The hit is rejected when the best
// re-scored recipe falls below the good-enough bar, since a fresh
// search could plausibly beat the cached one.
func (m *Matcher) getCacheEntry(target LAB) ([]Recipe, bool) {
	if m.cache == nil {
		return nil, false
	}
	entry, ok := m.cache[quantizeLAB(target)]
	if !ok {
		m.lookupMisses++
		return nil, false
	}

	rescored := make([]Recipe, len(entry.Recipes))
	best := 0.0
	for i, r := range entry.Recipes {
		rescored[i] = r
		rescored[i].MatchPercentage = m.cfg.DistanceToMatchPercent(
			DeltaECIEDE2000(target, r.EstimatedLAB))
		if rescored[i].MatchPercentage > best {
			best = rescored[i].MatchPercentage
		}
	}
	if best < m.cfg.GoodEnoughScore {
		m.lookupMisses++
		return nil, false
	}

	m.lookupHits++
	return rankRecipes(rescored, m.topK), true
}
