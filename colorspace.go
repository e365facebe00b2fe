package paintmix

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGB represents a color in the sRGB color space with 8-bit channels,
// where each channel ranges from 0 to 255.
type RGB struct {
	R, G, B uint8
}

// LAB represents a color in the CIE L*a*b* color space under a D65
// illuminant. L ranges 0-100; a and b are signed chroma axes, roughly
// -128..127 for colors reachable from sRGB.
type LAB struct {
	L, A, B float64
}

// HSL represents a color in the HSL color space. H is a hue angle in
// degrees [0,360), S and L are fractions in [0,1].
type HSL struct {
	H, S, L float64
}

// D65 reference white point, 2 degree observer.
const (
	refX = 95.047
	refY = 100.0
	refZ = 108.883
)

const epsilon = 0.000001 // For floating-point comparisons

// Hex returns the color as an uppercase hex string with a leading '#'.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ToColor converts RGB to color.RGBA for use with standard library
// image drawing.
func (c RGB) ToColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ParseHex parses a hex color string of the form "#RRGGBB" or "RRGGBB"
// and returns the RGB color. The function returns an error if the string
// is not a valid 6-digit hex color.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Valid reports whether the LAB value contains no NaN or infinite
// components. Invalid LAB values are substituted with mid-gray by the
// conversion functions rather than raising errors.
func (c LAB) Valid() bool {
	for _, v := range []float64{c.L, c.A, c.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Chroma returns the chroma magnitude sqrt(a^2 + b^2).
func (c LAB) Chroma() float64 {
	return math.Hypot(c.A, c.B)
}

// HueAngle returns the LAB hue angle in degrees [0,360). Achromatic
// colors (a and b both near zero) report an angle of 0.
func (c LAB) HueAngle() float64 {
	if math.Abs(c.A) < epsilon && math.Abs(c.B) < epsilon {
		return 0
	}
	h := math.Atan2(c.B, c.A) * (180 / math.Pi)
	if h < 0 {
		h += 360
	}
	return h
}

// midGray is the documented fallback for invalid LAB input.
var midGray = LAB{L: 50, A: 0, B: 0}

// RGBToLAB converts an sRGB color to CIE L*a*b* using the D65 white
// point. The conversion applies sRGB gamma linearization, the linear
// RGB to XYZ matrix transform, white-point normalization, and the
// piecewise CIE cube-root nonlinearity.
func RGBToLAB(c RGB) LAB {
	r := srgbToLinear(float64(c.R) / 255)
	g := srgbToLinear(float64(c.G) / 255)
	b := srgbToLinear(float64(c.B) / 255)

	x := (r*0.4124564 + g*0.3575761 + b*0.1804375) * 100
	y := (r*0.2126729 + g*0.7151522 + b*0.0721750) * 100
	z := (r*0.0193339 + g*0.1191920 + b*0.9503041) * 100

	fx := labForward(x / refX)
	fy := labForward(y / refY)
	fz := labForward(z / refZ)

	lab := LAB{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
	if !lab.Valid() {
		return midGray
	}
	return lab
}

// LABToRGB converts a CIE L*a*b* color back to sRGB. Out-of-gamut
// values are clamped to [0,255] per channel and rounded; the function
// never fails. Invalid (NaN) input converts as mid-gray.
func LABToRGB(c LAB) RGB {
	if !c.Valid() {
		c = midGray
	}

	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200

	x := labInverse(fx) * refX
	y := labInverse(fy) * refY
	z := labInverse(fz) * refZ

	x /= 100
	y /= 100
	z /= 100

	r := x*3.2404542 + y*-1.5371385 + z*-0.4985314
	g := x*-0.9692660 + y*1.8760108 + z*0.0415560
	b := x*0.0556434 + y*-0.2040259 + z*1.0572252

	return RGB{
		R: clampChannel(linearToSrgb(r) * 255),
		G: clampChannel(linearToSrgb(g) * 255),
		B: clampChannel(linearToSrgb(b) * 255),
	}
}

// RGBToHSL converts an sRGB color to HSL. Achromatic colors report
// hue 0 and saturation 0 rather than dividing by zero.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	if maxC-minC < epsilon {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxC - minC
	var s float64
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return HSL{H: h, S: s, L: l}
}

// HSLToRGB converts an HSL color to sRGB. Inputs outside the valid
// ranges are clamped rather than rejected.
func HSLToRGB(c HSL) RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	s := clamp01(c.S)
	l := clamp01(c.L)

	if s < epsilon {
		v := clampChannel(l * 255)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hk := h / 360
	return RGB{
		R: clampChannel(hueToChannel(p, q, hk+1.0/3) * 255),
		G: clampChannel(hueToChannel(p, q, hk) * 255),
		B: clampChannel(hueToChannel(p, q, hk-1.0/3) * 255),
	}
}

// DeltaE76 calculates the Euclidean distance between two LAB colors
// (the CIE76 delta E). It is the fast distance used inside search
// loops; use DeltaECIEDE2000 for user-facing match quality.
func DeltaE76(c1, c2 LAB) float64 {
	dl := c1.L - c2.L
	da := c1.A - c2.A
	db := c1.B - c2.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// DeltaECIEDE2000 calculates the CIEDE2000 color difference between
// two LAB colors. It is substantially more expensive than DeltaE76 but
// tracks perceived difference much better, particularly for desaturated
// and blue colors. Invalid inputs are treated as mid-gray.
func DeltaECIEDE2000(c1, c2 LAB) float64 {
	if !c1.Valid() {
		c1 = midGray
	}
	if !c2.Valid() {
		c2 = midGray
	}

	const (
		kl = 1.0
		kc = 1.0
		kh = 1.0
	)

	cab1 := math.Hypot(c1.A, c1.B)
	cab2 := math.Hypot(c2.A, c2.B)
	cabMean := (cab1 + cab2) / 2

	g := 0.5 * (1 - math.Sqrt(math.Pow(cabMean, 7)/(math.Pow(cabMean, 7)+math.Pow(25, 7))))
	ap1 := (1 + g) * c1.A
	ap2 := (1 + g) * c2.A

	cp1 := math.Hypot(ap1, c1.B)
	cp2 := math.Hypot(ap2, c2.B)

	hp1 := hueAngleDeg(ap1, c1.B)
	hp2 := hueAngleDeg(ap2, c2.B)

	deltaL := c2.L - c1.L
	deltaC := cp2 - cp1

	var deltaHp float64
	switch {
	case cp1*cp2 < epsilon:
		deltaHp = 0
	case math.Abs(hp2-hp1) <= 180:
		deltaHp = hp2 - hp1
	case hp2-hp1 > 180:
		deltaHp = hp2 - hp1 - 360
	default:
		deltaHp = hp2 - hp1 + 360
	}
	deltaH := 2 * math.Sqrt(cp1*cp2) * math.Sin(deltaHp/2*math.Pi/180)

	lpMean := (c1.L + c2.L) / 2
	cpMean := (cp1 + cp2) / 2

	var hpMean float64
	switch {
	case cp1*cp2 < epsilon:
		hpMean = hp1 + hp2
	case math.Abs(hp1-hp2) <= 180:
		hpMean = (hp1 + hp2) / 2
	case hp1+hp2 < 360:
		hpMean = (hp1 + hp2 + 360) / 2
	default:
		hpMean = (hp1 + hp2 - 360) / 2
	}

	t := 1 -
		0.17*math.Cos((hpMean-30)*math.Pi/180) +
		0.24*math.Cos(2*hpMean*math.Pi/180) +
		0.32*math.Cos((3*hpMean+6)*math.Pi/180) -
		0.20*math.Cos((4*hpMean-63)*math.Pi/180)

	deltaTheta := 30 * math.Exp(-math.Pow((hpMean-275)/25, 2))
	rc := 2 * math.Sqrt(math.Pow(cpMean, 7)/(math.Pow(cpMean, 7)+math.Pow(25, 7)))
	sl := 1 + 0.015*math.Pow(lpMean-50, 2)/math.Sqrt(20+math.Pow(lpMean-50, 2))
	sc := 1 + 0.045*cpMean
	sh := 1 + 0.015*cpMean*t
	rt := -math.Sin(2*deltaTheta*math.Pi/180) * rc

	lTerm := deltaL / (kl * sl)
	cTerm := deltaC / (kc * sc)
	hTerm := deltaH / (kh * sh)

	return math.Sqrt(lTerm*lTerm + cTerm*cTerm + hTerm*hTerm + rt*cTerm*hTerm)
}

func hueAngleDeg(a, b float64) float64 {
	if math.Abs(a) < epsilon && math.Abs(b) < epsilon {
		return 0
	}
	h := math.Atan2(b, a) * (180 / math.Pi)
	if h < 0 {
		h += 360
	}
	return h
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSrgb(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// labForward is the piecewise CIE nonlinearity: cube root above the
// threshold, linear below.
func labForward(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func labInverse(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
