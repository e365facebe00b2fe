package paintmix

import "math"

// MixtureComponent pairs a paint with its material proportion in a
// recipe. Proportions are positive and need not sum to one until
// normalized; all color and ranking math runs on normalized values.
type MixtureComponent struct {
	Paint      *Paint
	Proportion float64
}

// Recipe is a set of one to three mixture components with the
// estimated mixed color and the match quality against the target it
// was searched for. Component order carries no meaning; two recipes
// with the same paint set are duplicates regardless of proportions.
type Recipe struct {
	Components      []MixtureComponent
	EstimatedLAB    LAB
	EstimatedHex    string
	MatchPercentage float64
}

// Normalized returns the component proportions scaled to sum to one.
// A recipe with a non-positive proportion sum returns equal shares.
func (r Recipe) Normalized() []MixtureComponent {
	var sum float64
	for _, c := range r.Components {
		sum += c.Proportion
	}
	out := make([]MixtureComponent, len(r.Components))
	for i, c := range r.Components {
		out[i] = c
		if sum > 0 {
			out[i].Proportion = c.Proportion / sum
		} else {
			out[i].Proportion = 1 / float64(len(r.Components))
		}
	}
	return out
}

// paintSetKey returns a canonical key for the unordered set of paint
// identities in the recipe, used for deduplication.
func (r Recipe) paintSetKey() string {
	ids := make([]string, len(r.Components))
	for i, c := range r.Components {
		ids[i] = c.Paint.ID
	}
	// Insertion sort; recipes have at most three components.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	key := ids[0]
	for _, id := range ids[1:] {
		key += "|" + id
	}
	return key
}

// AdjustRatioForStrength rescales a raw two-paint mixing ratio by the
// relative tinting strength of the pair. A 50/50 material mix of a
// high-strength and a low-strength pigment does not look like a 50/50
// visual blend; this is the documented approximation the search uses,
// intentionally a simple rescaling and not a physical model.
func AdjustRatioForStrength(rawRatio float64, s1, s2 TintingStrength) float64 {
	w1, w2 := s1.Weight(), s2.Weight()
	if w1+w2 <= 0 {
		return clamp01(rawRatio)
	}
	return clamp01(rawRatio * (w1 / (w1 + w2)) * 2)
}

// blendWeights converts material proportions into visual blend
// weights using the tinting strength of each paint, normalized to sum
// to one. The two-paint case instead uses AdjustRatioForStrength so
// the documented formula holds exactly.
func blendWeights(components []MixtureComponent) []float64 {
	weights := make([]float64, len(components))

	if len(components) == 2 {
		w := AdjustRatioForStrength(
			components[0].Proportion,
			components[0].Paint.TintingStrength,
			components[1].Paint.TintingStrength)
		weights[0] = w
		weights[1] = 1 - w
		return weights
	}

	var sum float64
	for i, c := range components {
		weights[i] = c.Proportion * c.Paint.TintingStrength.Weight()
		sum += weights[i]
	}
	if sum <= 0 {
		for i := range weights {
			weights[i] = 1 / float64(len(weights))
		}
		return weights
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// MixLAB estimates the color of physically mixing the given
// components: a tinting-strength weighted LAB average with the
// dulling model applied to the chroma axes. Components whose paints
// lack color data contribute nothing; an all-colorless mix estimates
// as mid-gray.
func MixLAB(components []MixtureComponent, cfg Config) LAB {
	weights := blendWeights(components)

	var l, a, b, wsum float64
	paints := make([]*Paint, 0, len(components))
	for i, c := range components {
		if !c.Paint.HasColor() {
			continue
		}
		paints = append(paints, c.Paint)
		l += c.Paint.LAB.L * weights[i]
		a += c.Paint.LAB.A * weights[i]
		b += c.Paint.LAB.B * weights[i]
		wsum += weights[i]
	}
	if wsum <= 0 {
		return midGray
	}
	l /= wsum
	a /= wsum
	b /= wsum

	// Scale a and b together so chroma shrinks but hue holds.
	factor := cfg.DullingFactor(paints)
	mixed := LAB{L: l, A: a * factor, B: b * factor}
	if !mixed.Valid() {
		return midGray
	}
	return mixed
}

// newRecipe builds a Recipe for the components against the target,
// normalizing proportions and computing the estimated color and the
// CIEDE2000-based match percentage.
func newRecipe(target LAB, components []MixtureComponent, cfg Config) Recipe {
	r := Recipe{Components: components}
	r.Components = r.Normalized()
	r.EstimatedLAB = MixLAB(r.Components, cfg)
	r.EstimatedHex = LABToRGB(r.EstimatedLAB).Hex()
	r.MatchPercentage = cfg.DistanceToMatchPercent(
		DeltaECIEDE2000(target, r.EstimatedLAB))
	return r
}

// mixedLightness returns the blend-weighted lightness of two paints
// at the given ratio of the first paint, without dulling (dulling
// does not move L).
func mixedLightness(p1, p2 *Paint, ratio float64) float64 {
	w := AdjustRatioForStrength(ratio, p1.TintingStrength, p2.TintingStrength)
	return p1.LAB.L*w + p2.LAB.L*(1-w)
}

// ratioForLightness returns the material ratio of p1 that lands the
// blended lightness on targetL, clamped into a sane working range so
// neither paint vanishes. Returns NaN when the pair cannot reach the
// target lightness direction at all.
func ratioForLightness(p1, p2 *Paint, targetL float64) float64 {
	l1, l2 := p1.LAB.L, p2.LAB.L
	if math.Abs(l1-l2) < epsilon {
		return math.NaN()
	}
	// Visual blend weight of p1 that lands on targetL.
	w := (targetL - l2) / (l1 - l2)
	w = clampFloat(w, 0.05, 0.95)

	// Invert the strength adjustment to recover a material ratio.
	s1, s2 := p1.TintingStrength.Weight(), p2.TintingStrength.Weight()
	raw := w * (s1 + s2) / (2 * s1)
	return clampFloat(raw, 0.05, 0.95)
}
