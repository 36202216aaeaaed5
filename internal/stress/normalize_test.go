package stress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	veg := Range{Min: 300, Max: 600, Optimal: 450}

	tests := []struct {
		name  string
		value float64
		r     Range
		want  float64
	}{
		{"at optimal", 450, veg, 0},
		{"halfway to max", 525, veg, 15},
		{"at max edge", 600, veg, 30},
		{"at min edge", 300, veg, 30},
		{"half below min", 150, veg, 65},
		{"half above max", 900, veg, 65},
		{"zero reading", 0, veg, 100},
		{"far below min clamps", -300, veg, 100},
		{"degenerate exact", 5, Range{Min: 5, Max: 5, Optimal: 5}, 0},
		{"degenerate below", 4, Range{Min: 5, Max: 5, Optimal: 5}, 44},
		{"degenerate above", 6, Range{Min: 5, Max: 5, Optimal: 5}, 44},
		{"zero min below", -1, Range{Min: 0, Max: 10, Optimal: 5}, 100},
		{"zero max above", 1, Range{Min: -5, Max: 0, Optimal: -2}, 100},
		{"nan", math.NaN(), veg, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Normalize(tc.value, tc.r), 1e-9)
		})
	}
}

func TestNormalizeAsymmetricRangeUsesWiderSide(t *testing.T) {
	r := Range{Min: 10, Max: 40, Optimal: 20}
	// Wider side is 20 (optimal to max), so 10 off optimal is half of 30.
	assert.InDelta(t, 15, Normalize(30, r), 1e-9)
	assert.InDelta(t, 15, Normalize(10, r), 1e-9)
}

func TestNormalizeStaysInBoundsForStageRanges(t *testing.T) {
	values := []float64{-1e9, -100, -1, 0, 0.5, 1, 12, 25, 450, 900, 1500, 1e9, math.Inf(1), math.Inf(-1)}
	for _, p := range Profiles() {
		for _, r := range []Range{p.PPFD, p.Photoperiod, p.DLI, p.VPD, p.AirTemp, leafRange(p.AirTemp)} {
			for _, v := range values {
				got := Normalize(v, r)
				assert.GreaterOrEqual(t, got, 0.0, "stage=%s range=%+v value=%v", p.Stage, r, v)
				assert.LessOrEqual(t, got, 100.0, "stage=%s range=%+v value=%v", p.Stage, r, v)
			}
		}
	}
}
