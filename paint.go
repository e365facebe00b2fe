package paintmix

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
)

//go:embed paintdata/classic_oils.json
var paintFS embed.FS

// Opacity classifies how much a paint film hides what is under it.
// More transparent paints lose more chroma when mixed.
type Opacity string

const (
	Opaque          Opacity = "O"
	SemiOpaque      Opacity = "SO"
	SemiTransparent Opacity = "ST"
	Transparent     Opacity = "T"
)

// Score maps an opacity class to a numeric score used by the dulling
// model: opaque 1.0 down to transparent 0.25. Unknown classes score
// as semi-opaque.
func (o Opacity) Score() float64 {
	switch o {
	case Opaque:
		return 1.0
	case SemiOpaque:
		return 0.75
	case SemiTransparent:
		return 0.5
	case Transparent:
		return 0.25
	}
	return 0.75
}

// TintingStrength classifies how strongly a pigment shifts a mixture
// per unit of material added.
type TintingStrength string

const (
	StrengthHigh   TintingStrength = "High"
	StrengthMedium TintingStrength = "Medium"
	StrengthLow    TintingStrength = "Low"
)

// Weight returns the relative tinting weight for the strength class.
// The absent/default class is Medium.
func (s TintingStrength) Weight() float64 {
	switch s {
	case StrengthHigh:
		return 1.5
	case StrengthLow:
		return 0.5
	}
	return 1.0
}

// Role is a capability classification derived from a paint's LAB color
// at catalog load time. The search and advisor code branch on roles
// rather than matching paint names, so an incomplete or oddly named
// catalog still classifies sanely.
type Role string

const (
	RoleChromatic Role = "Chromatic"
	RoleWhite     Role = "White"
	RoleBlack     Role = "Black"
	RoleGray      Role = "Gray"
	RoleEarth     Role = "Earth"
)

// Paint is an immutable catalog record for a single tube of paint.
// The core only reads paints; the catalog is owned by the caller.
type Paint struct {
	ID              string          `json:"id"`
	Brand           string          `json:"brand"`
	Name            string          `json:"name"`
	PigmentCodes    []string        `json:"pigmentCodes"`
	Opacity         Opacity         `json:"opacity"`
	TintingStrength TintingStrength `json:"tintingStrength,omitempty"`
	LAB             *LAB            `json:"lab,omitempty"`
	Hex             string          `json:"hex,omitempty"`

	// Role is derived from LAB at load time when absent from the
	// source data.
	Role Role `json:"role,omitempty"`
}

// HasColor reports whether the paint carries a usable LAB value.
// Paints without one are skipped by every search pass.
func (p *Paint) HasColor() bool {
	return p.LAB != nil && p.LAB.Valid()
}

// Catalog is an ordered set of paints plus derived lookup structures.
type Catalog struct {
	Paints []Paint

	tree      *labNode
	whiteIdx  int
	blackIdx  int
	colorable []int // indices of paints with usable LAB values
}

// ClassifyRole derives the role classification for a LAB color. The
// thresholds are deliberately loose: the role only steers heuristics,
// never correctness.
func ClassifyRole(c LAB) Role {
	chroma := c.Chroma()
	switch {
	case c.L >= 88 && chroma <= 8:
		return RoleWhite
	case c.L <= 24 && chroma <= 14:
		return RoleBlack
	case chroma <= 10:
		return RoleGray
	}
	hue := c.HueAngle()
	if hue >= 20 && hue <= 90 && chroma <= 48 && c.L <= 68 {
		return RoleEarth
	}
	return RoleChromatic
}

// NewCatalog builds a catalog from paint records: roles are derived
// for paints that do not carry one, the KD-tree over LAB is built, and
// the nearest white and black substitutes are located. Paints without
// LAB values are retained but excluded from all derived structures.
func NewCatalog(paints []Paint) *Catalog {
	c := &Catalog{
		Paints:   paints,
		whiteIdx: -1,
		blackIdx: -1,
	}

	points := make([]labPoint, 0, len(paints))
	for i := range c.Paints {
		p := &c.Paints[i]
		if !p.HasColor() {
			continue
		}
		if p.Role == "" {
			p.Role = ClassifyRole(*p.LAB)
		}
		if p.Hex == "" {
			p.Hex = LABToRGB(*p.LAB).Hex()
		}
		c.colorable = append(c.colorable, i)
		points = append(points, labPoint{Index: i, Color: *p.LAB})
	}
	c.tree = buildLABTree(points, 0)

	c.whiteIdx = c.bestByRole(RoleWhite, func(p *Paint) float64 {
		return p.LAB.L // lightest white wins
	})
	c.blackIdx = c.bestByRole(RoleBlack, func(p *Paint) float64 {
		return -p.LAB.L // darkest black wins
	})
	return c
}

// LoadCatalog parses a JSON array of paint records and builds a
// catalog from it.
func LoadCatalog(data []byte) (*Catalog, error) {
	var paints []Paint
	if err := json.Unmarshal(data, &paints); err != nil {
		return nil, fmt.Errorf("error unmarshalling catalog JSON: %w", err)
	}
	return NewCatalog(paints), nil
}

// EmbeddedCatalog returns the catalog of classic artist oils shipped
// with the package.
func EmbeddedCatalog() (*Catalog, error) {
	data, err := paintFS.ReadFile("paintdata/classic_oils.json")
	if err != nil {
		return nil, fmt.Errorf("error reading embedded catalog: %w", err)
	}
	return LoadCatalog(data)
}

// Len returns the number of paints in the catalog, including paints
// without color data.
func (c *Catalog) Len() int { return len(c.Paints) }

// White returns the lightest white-role paint in the catalog, or nil
// when the catalog has none.
func (c *Catalog) White() *Paint {
	if c.whiteIdx < 0 {
		return nil
	}
	return &c.Paints[c.whiteIdx]
}

// Black returns the darkest black-role paint in the catalog, or nil
// when the catalog has none.
func (c *Catalog) Black() *Paint {
	if c.blackIdx < 0 {
		return nil
	}
	return &c.Paints[c.blackIdx]
}

// Nearest returns the catalog paint closest to the target by DeltaE76,
// or nil for an empty catalog.
func (c *Catalog) Nearest(target LAB) *Paint {
	idx, _ := c.tree.nearest(target, -1, math.MaxFloat64)
	if idx < 0 {
		return nil
	}
	return &c.Paints[idx]
}

// NearestK returns up to k catalog paints closest to the target by
// DeltaE76, ordered nearest first.
func (c *Catalog) NearestK(target LAB, k int) []*Paint {
	indices := c.tree.kNearest(target, k)
	paints := make([]*Paint, 0, len(indices))
	for _, idx := range indices {
		paints = append(paints, &c.Paints[idx])
	}
	return paints
}

// Complement locates a paint whose LAB hue angle is near 180 degrees
// from the given hue, restricted to the same brand for mixing
// plausibility. tolerance is the allowed deviation in degrees. The
// closest qualifying hue wins; nil when none qualifies.
func (c *Catalog) Complement(hue float64, brand string, tolerance float64) *Paint {
	targetHue := math.Mod(hue+180, 360)
	var best *Paint
	bestDelta := tolerance
	for _, idx := range c.colorable {
		p := &c.Paints[idx]
		if p.Brand != brand {
			continue
		}
		if p.Role == RoleWhite || p.Role == RoleBlack || p.Role == RoleGray {
			continue
		}
		delta := hueDelta(p.LAB.HueAngle(), targetHue)
		if delta <= bestDelta {
			bestDelta = delta
			best = p
		}
	}
	return best
}

// rolePaints returns the indices of colorable paints with the given role.
func (c *Catalog) rolePaints(role Role) []int {
	var out []int
	for _, idx := range c.colorable {
		if c.Paints[idx].Role == role {
			out = append(out, idx)
		}
	}
	return out
}

func (c *Catalog) bestByRole(role Role, score func(*Paint) float64) int {
	best := -1
	bestScore := math.Inf(-1)
	for _, idx := range c.rolePaints(role) {
		if s := score(&c.Paints[idx]); s > bestScore {
			bestScore = s
			best = idx
		}
	}
	return best
}

// hueDelta returns the absolute angular distance between two hue
// angles in degrees, in [0,180].
func hueDelta(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	if d > 180 {
		d = 360 - d
	}
	return d
}
