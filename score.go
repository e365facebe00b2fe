package paintmix

// Config holds the tuning constants for the mixture search and the
// painting-craft heuristics. The numeric defaults are carried over
// from the original product unchanged; they are empirical choices,
// not derived from a physical model, so override them rather than
// re-deriving them.
type Config struct {
	// MatchFloorDeltaE is the CIEDE2000 distance at which match
	// quality reaches zero.
	MatchFloorDeltaE float64

	// NearPerfectScore short-circuits the search after the single
	// paint pass: mixing cannot improve on an exact match.
	NearPerfectScore float64

	// GoodEnoughScore gates the ternary pass; three-paint recipes
	// are only searched when binary results stay below it.
	GoodEnoughScore float64

	// BinaryDullingRate and TernaryDullingRate scale the chroma loss
	// model for two- and three-paint mixes.
	BinaryDullingRate  float64
	TernaryDullingRate float64

	// LightnessBalanceThreshold is the LAB L difference between two
	// paints above which the advisor computes a value-balancing ratio.
	LightnessBalanceThreshold float64

	// DarkTargetLightness is the LAB L below which a target is treated
	// as near-black and the chromatic black heuristic engages.
	DarkTargetLightness float64

	// ComplementHueTolerance is the allowed deviation, in degrees,
	// from an exact 180 degree hue opposition when locating a
	// desaturating complement.
	ComplementHueTolerance float64

	// PruneDeltaE76 is the fast-distance gate: candidates farther than
	// this from the target (in plain LAB Euclidean terms) are not
	// added to the pool, though the single best candidate seen is
	// always retained as a fallback.
	PruneDeltaE76 float64
}

// DefaultConfig returns the product defaults.
func DefaultConfig() Config {
	return Config{
		MatchFloorDeltaE:          20.0,
		NearPerfectScore:          98.0,
		GoodEnoughScore:           90.0,
		BinaryDullingRate:         0.3,
		TernaryDullingRate:        0.4,
		LightnessBalanceThreshold: 20.0,
		DarkTargetLightness:       25.0,
		ComplementHueTolerance:    30.0,
		PruneDeltaE76:             40.0,
	}
}

// DistanceToMatchPercent maps a perceptual distance to a 0-100 match
// quality. The mapping is linear: zero distance scores 100, anything
// at or beyond MatchFloorDeltaE scores 0. The same mapping is used for
// every recipe size so scores stay comparable.
func (cfg Config) DistanceToMatchPercent(deltaE float64) float64 {
	if deltaE <= 0 {
		return 100
	}
	if deltaE >= cfg.MatchFloorDeltaE {
		return 0
	}
	return 100 * (1 - deltaE/cfg.MatchFloorDeltaE)
}

// DullingFactor models the chroma loss of physically mixing pigments.
// Mixing loses more saturation when the source colors are far apart
// and when the paints are transparent. The returned factor is in
// (0,1] and multiplies the mixed color's chroma magnitude; the caller
// must scale a and b together so the hue angle is preserved.
func (cfg Config) DullingFactor(paints []*Paint) float64 {
	if len(paints) < 2 {
		return 1
	}

	var maxDelta float64
	for i := 0; i < len(paints); i++ {
		for j := i + 1; j < len(paints); j++ {
			if !paints[i].HasColor() || !paints[j].HasColor() {
				continue
			}
			if d := DeltaE76(*paints[i].LAB, *paints[j].LAB); d > maxDelta {
				maxDelta = d
			}
		}
	}

	var opacitySum float64
	for _, p := range paints {
		opacitySum += p.Opacity.Score()
	}
	meanOpacity := opacitySum / float64(len(paints))

	baseRate := cfg.BinaryDullingRate
	if len(paints) >= 3 {
		baseRate = cfg.TernaryDullingRate
	}

	reduction := (maxDelta / 100) * baseRate * (1 - meanOpacity*0.5)
	factor := 1 - reduction
	if factor <= 0 {
		factor = epsilon
	}
	if factor > 1 {
		factor = 1
	}
	return factor
}
