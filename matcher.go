package paintmix

// Matcher encapsulates all state for mixture matching against one
// catalog. This allows multiple independent matchers with different
// configurations and efficient reuse of the catalog's derived lookup
// structures between calls. A Matcher is not safe for concurrent use
// because of its cache and statistics; create one per goroutine.
type Matcher struct {
	cfg              Config
	topK             int
	maxEvaluations   int
	ternaryShortlist int

	catalog *Catalog

	// Cache (private)
	cache        recipeCache
	lookupHits   int
	lookupMisses int

	// Stats for the most recent Match call (private)
	stats MatchStats
}

// MatchStats reports how the most recent Match call spent its budget.
type MatchStats struct {
	Evaluations     int
	SingleEvals     int
	BinaryEvals     int
	TernaryEvals    int
	AdvisorEvals    int
	TernaryInvoked  bool
	ShortCircuited  bool
	BudgetExhausted bool
	CacheHit        bool
}

// MatcherOption is a functional option for configuring a Matcher.
type MatcherOption func(*Matcher)

// NewMatcher creates a Matcher over the given catalog.
// Defaults: TopK=5, MaxEvaluations=20000, ternary shortlist of 8,
// caching enabled, DefaultConfig tuning.
func NewMatcher(catalog *Catalog, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		cfg:              DefaultConfig(),
		topK:             5,
		maxEvaluations:   20000,
		ternaryShortlist: 8,
		catalog:          catalog,
		cache:            make(recipeCache),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithConfig overrides the tuning constants.
func WithConfig(cfg Config) MatcherOption {
	return func(m *Matcher) { m.cfg = cfg }
}

// WithTopK sets how many recipes Match returns.
func WithTopK(k int) MatcherOption {
	return func(m *Matcher) { m.topK = k }
}

// WithMaxEvaluations sets the shared candidate-evaluation budget
// across all search passes. Once spent, the search stops early and
// ranks whatever was collected.
func WithMaxEvaluations(n int) MatcherOption {
	return func(m *Matcher) { m.maxEvaluations = n }
}

// WithTernaryShortlist sets how many nearest paints seed the
// three-paint pass.
func WithTernaryShortlist(n int) MatcherOption {
	return func(m *Matcher) { m.ternaryShortlist = n }
}

// WithCache enables or disables the approximate recipe cache.
func WithCache(enabled bool) MatcherOption {
	return func(m *Matcher) {
		if enabled {
			m.cache = make(recipeCache)
		} else {
			m.cache = nil
		}
	}
}

// Stats returns the pass statistics for the most recent Match call.
func (m *Matcher) Stats() MatchStats { return m.stats }

// CacheStats returns cache hit/miss statistics.
func (m *Matcher) CacheStats() (hits, misses int, hitRate float64) {
	total := m.lookupHits + m.lookupMisses
	if total == 0 {
		return 0, 0, 0
	}
	return m.lookupHits, m.lookupMisses, float64(m.lookupHits) / float64(total)
}

// Config returns the matcher's tuning constants.
func (m *Matcher) Config() Config { return m.cfg }

// Catalog returns the catalog the matcher searches.
func (m *Matcher) Catalog() *Catalog { return m.catalog }

// MatchRGB converts the target to LAB and runs Match.
func (m *Matcher) MatchRGB(target RGB) []Recipe {
	return m.Match(RGBToLAB(target))
}

// Match proposes up to TopK mixing recipes for the target color,
// best first. An empty catalog or an invalid target yields an empty
// list; every other condition degrades to the best recipes found
// within the budget. Match never fails.
func (m *Matcher) Match(target LAB) []Recipe {
	m.stats = MatchStats{}
	if m.catalog == nil || len(m.catalog.colorable) == 0 || !target.Valid() {
		return nil
	}

	if cached, ok := m.getCacheEntry(target); ok {
		m.stats.CacheHit = true
		return cached
	}

	s := &searchState{m: m, target: target}

	m.stats.SingleEvals = s.singlePass()

	// An exact or near-exact single-paint hit cannot be improved by
	// mixing; return single-paint recipes only.
	if s.bestScore >= m.cfg.NearPerfectScore {
		m.stats.ShortCircuited = true
		m.finishStats(s)
		ranked := rankRecipes(s.singlePool, m.topK)
		m.addCacheEntry(target, ranked)
		return ranked
	}
	s.pool = append(s.pool, s.singlePool...)

	m.stats.BinaryEvals = s.binaryPass()
	m.stats.AdvisorEvals = s.advisorPass()

	if s.bestScore < m.cfg.GoodEnoughScore {
		m.stats.TernaryInvoked = true
		m.stats.TernaryEvals = s.ternaryPass()
	}

	// The pool can be empty when the pruning gate rejected every
	// candidate; callers always get the best attempt regardless.
	if len(s.pool) == 0 && len(s.best.Components) > 0 {
		s.pool = append(s.pool, s.best)
	}

	m.finishStats(s)
	ranked := rankRecipes(s.pool, m.topK)
	ranked = s.preferChromaticDark(ranked)
	m.addCacheEntry(target, ranked)
	return ranked
}

func (m *Matcher) finishStats(s *searchState) {
	m.stats.Evaluations = s.evals
	m.stats.BudgetExhausted = s.exhausted
}

// searchState carries the candidate pool and budget accounting for a
// single Match call.
type searchState struct {
	m      *Matcher
	target LAB

	pool       []Recipe
	singlePool []Recipe

	best      Recipe
	bestScore float64

	evals     int
	exhausted bool
}

// spend consumes one evaluation from the budget, reporting false once
// the budget is gone.
func (s *searchState) spend() bool {
	if s.evals >= s.m.maxEvaluations {
		s.exhausted = true
		return false
	}
	s.evals++
	return true
}

// evaluate scores one candidate recipe and adds it to the pool unless
// the fast-distance gate rejects it. The best candidate ever seen is
// tracked separately so search exhaustion still yields an answer.
// Returns false when the budget is spent.
func (s *searchState) evaluate(components []MixtureComponent, single bool) bool {
	if !s.spend() {
		return false
	}

	r := newRecipe(s.target, components, s.m.cfg)
	if r.MatchPercentage > s.bestScore || len(s.best.Components) == 0 {
		s.bestScore = r.MatchPercentage
		s.best = r
	}

	if DeltaE76(s.target, r.EstimatedLAB) > s.m.cfg.PruneDeltaE76 {
		return true
	}
	if single {
		s.singlePool = append(s.singlePool, r)
	} else {
		s.pool = append(s.pool, r)
	}
	return true
}

// singlePass scores every catalog paint directly against the target.
func (s *searchState) singlePass() int {
	start := s.evals
	for _, idx := range s.m.catalog.colorable {
		p := &s.m.catalog.Paints[idx]
		if !s.evaluate([]MixtureComponent{{Paint: p, Proportion: 1}}, true) {
			break
		}
	}
	return s.evals - start
}

// coarseRatios is the 10% ladder for generic pairs.
var coarseRatios = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}

// whiteTintRatios and blackShadeRatios are the finer ladders for the
// most common real-world adjustments: tinting toward white and
// shading toward black. Small additions dominate in practice, so the
// ladders are dense near zero.
var (
	whiteTintRatios  = []float64{0.02, 0.05, 0.08, 0.12, 0.16, 0.2, 0.25, 0.3, 0.4}
	blackShadeRatios = []float64{0.02, 0.05, 0.08, 0.12, 0.2, 0.3}
)

// binaryPass samples every unordered pair over the coarse ratio
// ladder, plus the fine white/black ladders for pairs involving the
// closest available white and black substitute.
func (s *searchState) binaryPass() int {
	start := s.evals
	cat := s.m.catalog

	for i := 0; i < len(cat.colorable); i++ {
		for j := i + 1; j < len(cat.colorable); j++ {
			p1 := &cat.Paints[cat.colorable[i]]
			p2 := &cat.Paints[cat.colorable[j]]
			for _, ratio := range coarseRatios {
				ok := s.evaluate([]MixtureComponent{
					{Paint: p1, Proportion: ratio},
					{Paint: p2, Proportion: 1 - ratio},
				}, false)
				if !ok {
					return s.evals - start
				}
			}
		}
	}

	if white := cat.White(); white != nil {
		if !s.partnerLadder(white, whiteTintRatios) {
			return s.evals - start
		}
	}
	if black := cat.Black(); black != nil {
		if !s.partnerLadder(black, blackShadeRatios) {
			return s.evals - start
		}
	}
	return s.evals - start
}

// partnerLadder pairs every hue-carrying paint with the given partner
// over a fine ladder of partner fractions.
func (s *searchState) partnerLadder(partner *Paint, fractions []float64) bool {
	cat := s.m.catalog
	for _, idx := range cat.colorable {
		p := &cat.Paints[idx]
		if p.ID == partner.ID {
			continue
		}
		for _, f := range fractions {
			ok := s.evaluate([]MixtureComponent{
				{Paint: p, Proportion: 1 - f},
				{Paint: partner, Proportion: f},
			}, false)
			if !ok {
				return false
			}
		}
	}
	return true
}

// ternarySplits is the fixed set of meaningful three-way splits:
// dominant/secondary/accent proportions rather than a full grid.
var ternarySplits = [][3]float64{
	{0.7, 0.2, 0.1},
	{0.6, 0.3, 0.1},
	{0.5, 0.3, 0.2},
	{1.0 / 3, 1.0 / 3, 1.0 / 3},
}

// ternaryTintSplits pair two hue-carrying paints with white.
var ternaryTintSplits = [][3]float64{
	{0.45, 0.45, 0.1},
	{0.4, 0.4, 0.2},
	{0.35, 0.35, 0.3},
}

// splitPerms enumerates the assignments of a split to three paints.
var splitPerms = [][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// ternaryPass searches three-paint recipes over a shortlist of the
// paints closest to the target, to keep the combinatorics tractable.
func (s *searchState) ternaryPass() int {
	start := s.evals
	shortlist := s.m.catalog.NearestK(s.target, s.m.ternaryShortlist)
	if len(shortlist) < 3 {
		return 0
	}

	for i := 0; i < len(shortlist); i++ {
		for j := i + 1; j < len(shortlist); j++ {
			for k := j + 1; k < len(shortlist); k++ {
				trio := [3]*Paint{shortlist[i], shortlist[j], shortlist[k]}
				if !s.ternaryCombo(trio) {
					return s.evals - start
				}
			}
		}
	}

	// Tinting combinations: two hue-carrying shortlist paints plus
	// the catalog white.
	white := s.m.catalog.White()
	if white == nil {
		return s.evals - start
	}
	for i := 0; i < len(shortlist); i++ {
		for j := i + 1; j < len(shortlist); j++ {
			p1, p2 := shortlist[i], shortlist[j]
			if p1.Role == RoleWhite || p2.Role == RoleWhite {
				continue
			}
			for _, split := range ternaryTintSplits {
				ok := s.evaluate([]MixtureComponent{
					{Paint: p1, Proportion: split[0]},
					{Paint: p2, Proportion: split[1]},
					{Paint: white, Proportion: split[2]},
				}, false)
				if !ok {
					return s.evals - start
				}
			}
		}
	}
	return s.evals - start
}

// ternaryCombo evaluates all distinct assignments of the fixed splits
// to one combination of three paints.
func (s *searchState) ternaryCombo(trio [3]*Paint) bool {
	for _, split := range ternarySplits {
		equalSplit := split[0] == split[1] && split[1] == split[2]
		for _, perm := range splitPerms {
			ok := s.evaluate([]MixtureComponent{
				{Paint: trio[0], Proportion: split[perm[0]]},
				{Paint: trio[1], Proportion: split[perm[1]]},
				{Paint: trio[2], Proportion: split[perm[2]]},
			}, false)
			if !ok {
				return false
			}
			if equalSplit {
				break // all six assignments are identical
			}
		}
	}
	return true
}
