package stress

import "math"

const (
	inRangeCeiling  = 30.0
	outOfRangeSpan  = 70.0
	scoreFloor      = 0.0
	scoreCeiling    = 100.0
	photoinhibition = 20.0
)

// Normalize maps value against r onto a 0–100 stress contribution.
//
// Inside [Min, Max] the score grows linearly with distance from Optimal up to
// 30. Outside the band it jumps to 30 and grows with the relative deficit
// (against Min) or excess (against Max) by up to another 70 points.
//
// A degenerate band (Min == Max) scores 0 for an exact match and otherwise
// uses the out-of-range branches. A non-positive Min or Max denominator on an
// out-of-range branch yields 100.
func Normalize(value float64, r Range) float64 {
	if math.IsNaN(value) {
		return scoreCeiling
	}
	switch {
	case value < r.Min:
		if r.Min <= 0 {
			return scoreCeiling
		}
		return clamp(inRangeCeiling + (r.Min-value)/r.Min*outOfRangeSpan)
	case value > r.Max:
		if r.Max <= 0 {
			return scoreCeiling
		}
		return clamp(inRangeCeiling + (value-r.Max)/r.Max*outOfRangeSpan)
	}

	span := math.Max(r.Optimal-r.Min, r.Max-r.Optimal)
	if span <= 0 {
		return 0
	}
	return clamp(math.Abs(value-r.Optimal) / span * inRangeCeiling)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return scoreCeiling
	}
	return math.Min(scoreCeiling, math.Max(scoreFloor, v))
}
