package paintmix

import "math"

// The advisor pass injects candidates a ratio ladder tends to miss:
// value-balanced tints and shades, chromatic blacks for very dark
// targets, and complement dulling for chroma overshoot. Advisors only
// append candidates; ranking decides whether any of them win.

func (s *searchState) advisorPass() int {
	start := s.evals
	if !s.adviseValueBalance() {
		return s.evals - start
	}
	if !s.adviseChromaticBlack() {
		return s.evals - start
	}
	s.adviseComplementDulling()
	return s.evals - start
}

// complementDullingFractions is the ladder of complement additions for
// knocking back an overshooting chroma. Past ~15% the mix turns muddy
// instead of duller.
var complementDullingFractions = []float64{0.05, 0.1, 0.15}

// chromaticBlackRatios is the share of the dark chromatic paint in a
// two-paint chromatic black.
var chromaticBlackRatios = []float64{0.4, 0.5, 0.6, 0.7}

// adviseValueBalance proposes white or black additions at the exact
// ratio that lands the blend's lightness on the target, for every
// paint whose lightness misses the target by more than the threshold.
// The ratio ladder in the binary pass steps in fixed increments; this
// advisor solves for the ratio instead.
func (s *searchState) adviseValueBalance() bool {
	cat := s.m.catalog
	for _, idx := range cat.colorable {
		p := &cat.Paints[idx]
		dl := s.target.L - p.LAB.L
		if math.Abs(dl) <= s.m.cfg.LightnessBalanceThreshold {
			continue
		}

		var partner *Paint
		if dl > 0 {
			partner = cat.White()
		} else {
			partner = cat.Black()
		}
		if partner == nil || partner.ID == p.ID {
			continue
		}

		ratio := ratioForLightness(p, partner, s.target.L)
		if math.IsNaN(ratio) {
			continue
		}
		ok := s.evaluate([]MixtureComponent{
			{Paint: p, Proportion: ratio},
			{Paint: partner, Proportion: 1 - ratio},
		}, false)
		if !ok {
			return false
		}
	}
	return true
}

// adviseChromaticBlack proposes dark-blue-plus-warm-earth mixtures for
// very dark targets. Painters rarely reach for tube black: a deep blue
// dulled with an earth reads as a richer dark and can lean warm or
// cool. The lean follows the target's own chroma axes.
func (s *searchState) adviseChromaticBlack() bool {
	if s.target.L >= s.m.cfg.DarkTargetLightness {
		return true
	}
	cat := s.m.catalog

	var blues, warms []*Paint
	for _, idx := range cat.colorable {
		p := &cat.Paints[idx]
		switch p.Role {
		case RoleChromatic:
			hue := p.LAB.HueAngle()
			if p.LAB.L < 45 && hue >= 230 && hue <= 310 {
				blues = append(blues, p)
			}
		case RoleEarth:
			warms = append(warms, p)
		}
	}
	if len(blues) == 0 || len(warms) == 0 {
		return true
	}

	// A warm target (positive a+b) wants more earth; a cool one wants
	// more blue. Neutral targets try the whole ratio ladder.
	warmTarget := s.target.A+s.target.B > epsilon
	coolTarget := s.target.A+s.target.B < -epsilon

	for _, blue := range blues {
		for _, warm := range warms {
			for _, blueShare := range chromaticBlackRatios {
				if warmTarget && blueShare > 0.5 {
					continue
				}
				if coolTarget && blueShare < 0.5 {
					continue
				}
				pair := []MixtureComponent{
					{Paint: blue, Proportion: blueShare},
					{Paint: warm, Proportion: 1 - blueShare},
				}
				if !s.evaluate(pair, false) {
					return false
				}
				if !s.liftPairToLightness(blue, warm, blueShare) {
					return false
				}
			}
		}
	}
	return true
}

// liftPairToLightness blends a chromatic black pair with the catalog
// white in small increments up to the share that lands the blend's
// lightness on the target. Pairs already at or below the target
// lightness get no white: adding any would only overshoot.
func (s *searchState) liftPairToLightness(blue, warm *Paint, blueShare float64) bool {
	white := s.m.catalog.White()
	if white == nil {
		return true
	}
	pairMix := MixLAB([]MixtureComponent{
		{Paint: blue, Proportion: blueShare},
		{Paint: warm, Proportion: 1 - blueShare},
	}, s.m.cfg)
	if s.target.L <= pairMix.L+epsilon || white.LAB.L <= pairMix.L {
		return true
	}

	// Visual white share that lands on the target lightness, converted
	// back to a material share through the strength weights.
	need := (s.target.L - pairMix.L) / (white.LAB.L - pairMix.L)
	sw := white.TintingStrength.Weight()
	sp := (blue.TintingStrength.Weight() + warm.TintingStrength.Weight()) / 2
	mat := clampFloat(need*(sw+sp)/(2*sw), 0.02, 0.5)

	for _, f := range []float64{mat / 2, mat} {
		ok := s.evaluate([]MixtureComponent{
			{Paint: blue, Proportion: blueShare * (1 - f)},
			{Paint: warm, Proportion: (1 - blueShare) * (1 - f)},
			{Paint: white, Proportion: f},
		}, false)
		if !ok {
			return false
		}
	}
	return true
}

// preferChromaticDark applies the chromatic black preference to the
// final ranking of a near-black target: when every ranked recipe
// leans on a tube black, the best mixture found without black or
// white takes the last slot. Tube-black mixes routinely outscore the
// chromatic alternatives on raw distance, but a painter asking for a
// rich dark should still see one.
func (s *searchState) preferChromaticDark(ranked []Recipe) []Recipe {
	if s.target.L >= s.m.cfg.DarkTargetLightness || len(ranked) == 0 {
		return ranked
	}
	for _, r := range ranked {
		if isChromaticDark(r) {
			return ranked
		}
	}

	var best Recipe
	found := false
	for _, r := range s.pool {
		if !isChromaticDark(r) {
			continue
		}
		if !found || r.MatchPercentage > best.MatchPercentage {
			best = r
			found = true
		}
	}
	if !found {
		return ranked
	}
	if s.m.topK <= 0 || len(ranked) < s.m.topK {
		return append(ranked, best)
	}
	ranked[len(ranked)-1] = best
	return ranked
}

// isChromaticDark reports whether the recipe is a mixture of two or
// more paints with no tube black and no white among them.
func isChromaticDark(r Recipe) bool {
	if len(r.Components) < 2 {
		return false
	}
	for _, c := range r.Components {
		if c.Paint.Role == RoleBlack || c.Paint.Role == RoleWhite {
			return false
		}
	}
	return true
}

// adviseComplementDulling proposes small complement additions when the
// nearest single paint overshoots the target's chroma. Adding the
// complement reduces chroma while moving lightness far less than black
// would.
func (s *searchState) adviseComplementDulling() bool {
	cat := s.m.catalog
	base := cat.Nearest(s.target)
	if base == nil || !base.HasColor() {
		return true
	}
	if base.LAB.Chroma() <= s.target.Chroma()+epsilon {
		return true
	}

	comp := cat.Complement(base.LAB.HueAngle(), base.Brand, s.m.cfg.ComplementHueTolerance)
	if comp == nil || comp.ID == base.ID {
		return true
	}

	for _, f := range complementDullingFractions {
		ok := s.evaluate([]MixtureComponent{
			{Paint: base, Proportion: 1 - f},
			{Paint: comp, Proportion: f},
		}, false)
		if !ok {
			return false
		}
	}
	return true
}
