package paintmix

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestRGBToLABKnownColors(t *testing.T) {
	testCases := []struct {
		name string
		rgb  RGB
		want LAB
	}{
		{"white", RGB{255, 255, 255}, LAB{100, 0, 0}},
		{"black", RGB{0, 0, 0}, LAB{0, 0, 0}},
		{"red", RGB{255, 0, 0}, LAB{53.2408, 80.0925, 67.2032}},
		{"green", RGB{0, 255, 0}, LAB{87.7347, -86.1827, 83.1793}},
		{"blue", RGB{0, 0, 255}, LAB{32.2970, 79.1875, -107.8602}},
		{"mid gray", RGB{119, 119, 119}, LAB{50.03, 0, 0}},
	}

	for _, tc := range testCases {
		got := RGBToLAB(tc.rgb)
		if math.Abs(got.L-tc.want.L) > 0.05 ||
			math.Abs(got.A-tc.want.A) > 0.05 ||
			math.Abs(got.B-tc.want.B) > 0.05 {
			t.Errorf("%s: RGBToLAB(%v) = %+v, want %+v",
				tc.name, tc.rgb, got, tc.want)
		}
	}
}

func TestRGBToLABMatchesColorful(t *testing.T) {
	// go-colorful implements the same D65 sRGB-to-Lab conversion and
	// serves as an independent oracle.
	colors := []RGB{
		{255, 255, 255}, {0, 0, 0}, {255, 0, 0}, {0, 255, 0},
		{0, 0, 255}, {128, 64, 32}, {200, 180, 10}, {17, 34, 51},
		{226, 114, 91}, {90, 140, 200},
	}
	for _, c := range colors {
		got := RGBToLAB(c)
		oracle := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}
		l, a, b := oracle.Lab()
		want := LAB{L: l * 100, A: a * 100, B: b * 100}
		if math.Abs(got.L-want.L) > 0.5 ||
			math.Abs(got.A-want.A) > 0.5 ||
			math.Abs(got.B-want.B) > 0.5 {
			t.Errorf("RGBToLAB(%v) = %+v, oracle %+v", c, got, want)
		}
	}
}

func TestRGBLABRoundTrip(t *testing.T) {
	colors := []RGB{
		{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0},
		{0, 0, 255}, {128, 128, 128}, {226, 114, 91}, {10, 200, 90},
		{45, 45, 46}, {250, 249, 230},
	}
	for _, c := range colors {
		back := LABToRGB(RGBToLAB(c))
		if absInt(int(back.R)-int(c.R)) > 1 ||
			absInt(int(back.G)-int(c.G)) > 1 ||
			absInt(int(back.B)-int(c.B)) > 1 {
			t.Errorf("round trip %v -> %v exceeds 1 per channel", c, back)
		}
	}
}

func TestLABToRGBInvalid(t *testing.T) {
	invalid := LAB{L: math.NaN(), A: 0, B: 0}
	got := LABToRGB(invalid)
	want := LABToRGB(midGray)
	if got != want {
		t.Errorf("LABToRGB(NaN) = %v, want mid-gray %v", got, want)
	}
}

func TestLABToRGBOutOfGamut(t *testing.T) {
	// A LAB value no sRGB color reaches must clamp, not wrap.
	c := LABToRGB(LAB{L: 50, A: 120, B: -120})
	_ = c // any value is acceptable as long as it does not panic
	bright := LABToRGB(LAB{L: 200, A: 0, B: 0})
	if bright != (RGB{255, 255, 255}) {
		t.Errorf("LABToRGB(L=200) = %v, want white", bright)
	}
}

func TestDeltaE76(t *testing.T) {
	a := LAB{50, 10, -10}
	b := LAB{53, 14, -10}
	if d := DeltaE76(a, a); d != 0 {
		t.Errorf("DeltaE76 identity = %v, want 0", d)
	}
	if d := DeltaE76(a, b); math.Abs(d-5) > 1e-9 {
		t.Errorf("DeltaE76 = %v, want 5", d)
	}
	if DeltaE76(a, b) != DeltaE76(b, a) {
		t.Error("DeltaE76 is not symmetric")
	}
}

func TestDeltaECIEDE2000ReferencePairs(t *testing.T) {
	// Reference values from Sharma, Wu & Dalal, "The CIEDE2000
	// Color-Difference Formula: Implementation Notes" (2005).
	testCases := []struct {
		c1, c2 LAB
		want   float64
	}{
		{LAB{50, 2.6772, -79.7751}, LAB{50, 0, -82.7485}, 2.0425},
		{LAB{50, 3.1571, -77.2803}, LAB{50, 0, -82.7485}, 2.8615},
		{LAB{50, 2.8361, -74.0200}, LAB{50, 0, -82.7485}, 3.4412},
		{LAB{50, 2.5, 0}, LAB{73, 25, -18}, 27.1492},
		{LAB{50, 2.5, 0}, LAB{61, -5, 29}, 22.8977},
		{LAB{50, 2.5, 0}, LAB{50, -1, 2}, 4.3065},
		{LAB{35.0831, -44.1164, 3.7933}, LAB{35.0232, -40.0716, 1.5901}, 1.8645},
		{LAB{2.0776, 0.0795, -1.1350}, LAB{0.9033, -0.0636, -0.5514}, 0.9082},
	}

	for i, tc := range testCases {
		got := DeltaECIEDE2000(tc.c1, tc.c2)
		if math.Abs(got-tc.want) > 0.01 {
			t.Errorf("case %d: DeltaECIEDE2000 = %.4f, want %.4f", i, got, tc.want)
		}
		rev := DeltaECIEDE2000(tc.c2, tc.c1)
		if math.Abs(got-rev) > 1e-9 {
			t.Errorf("case %d: not symmetric: %.6f vs %.6f", i, got, rev)
		}
	}

	c := LAB{62.5, 12.1, -33.0}
	if d := DeltaECIEDE2000(c, c); d != 0 {
		t.Errorf("identity = %v, want 0", d)
	}
}

func TestParseHex(t *testing.T) {
	testCases := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#E2725B", RGB{226, 114, 91}, false},
		{"e2725b", RGB{226, 114, 91}, false},
		{" #FFFFFF ", RGB{255, 255, 255}, false},
		{"#FFF", RGB{}, true},
		{"#GGGGGG", RGB{}, true},
		{"", RGB{}, true},
	}
	for _, tc := range testCases {
		got, err := ParseHex(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB{226, 114, 91}
	back, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatalf("ParseHex(%q): %v", c.Hex(), err)
	}
	if back != c {
		t.Errorf("hex round trip %v -> %q -> %v", c, c.Hex(), back)
	}
}

func TestHSLRoundTrip(t *testing.T) {
	colors := []RGB{
		{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {128, 128, 128},
		{226, 114, 91}, {0, 0, 0}, {255, 255, 255},
	}
	for _, c := range colors {
		back := HSLToRGB(RGBToHSL(c))
		if absInt(int(back.R)-int(c.R)) > 1 ||
			absInt(int(back.G)-int(c.G)) > 1 ||
			absInt(int(back.B)-int(c.B)) > 1 {
			t.Errorf("HSL round trip %v -> %v exceeds 1 per channel", c, back)
		}
	}
}

func TestHueAngle(t *testing.T) {
	if h := (LAB{50, 10, 0}).HueAngle(); math.Abs(h) > 1e-9 {
		t.Errorf("hue of +a axis = %v, want 0", h)
	}
	if h := (LAB{50, 0, 10}).HueAngle(); math.Abs(h-90) > 1e-9 {
		t.Errorf("hue of +b axis = %v, want 90", h)
	}
	if h := (LAB{50, -10, 0}).HueAngle(); math.Abs(h-180) > 1e-9 {
		t.Errorf("hue of -a axis = %v, want 180", h)
	}
	if h := (LAB{50, 0, 0}).HueAngle(); h != 0 {
		t.Errorf("achromatic hue = %v, want 0", h)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
