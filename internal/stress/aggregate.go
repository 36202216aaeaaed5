package stress

import (
	"math"
	"time"
)

// Severity thresholds on the overall index. Each bound is exclusive: a score
// equal to a threshold belongs to the next bucket up.
const (
	thresholdMild     = 15.0
	thresholdModerate = 30.0
	thresholdSevere   = 50.0
	thresholdCritical = 70.0
)

const (
	maxYieldReduction = 80.0

	recoveryThreshold     = 50.0
	lightRecoveryHours    = 24
	nutrientRecoveryHours = 48
	vpdRecoveryHours      = 12
)

// Evaluate scores a snapshot taken at the given time. It is a pure function of
// its inputs and safe to call concurrently.
//
// An unknown growth stage is scored with the vegetative tables; the result then
// carries Stage == Vegetative and StageFallback == true.
func Evaluate(s Snapshot, at time.Time) Result {
	profile, fallback := ProfileFor(s.Plant.Stage)

	cats := Categories{
		Light:    scoreLight(s.Environment, profile),
		VPD:      scoreVPD(s.Environment, s.Plant, profile),
		Nutrient: scoreNutrient(s.Nutrients, profile),
		Thermal:  scoreThermal(s.Environment, profile),
		Water:    scoreWater(s.Environment, s.Plant, profile),
	}
	overall := Aggregate(cats, profile.Weights)

	return Result{
		Timestamp:       at,
		Stage:           profile.Stage,
		StageFallback:   fallback,
		Overall:         overall,
		Categories:      cats,
		Severity:        Classify(overall),
		Dominant:        DominantStressor(cats),
		Recommendations: Recommend(s, cats, profile),
		Impact:          PredictImpact(overall, cats, profile.Stage),
	}
}

// Aggregate combines the category scores with the stage weights, clamped to [0, 100].
func Aggregate(cats Categories, w Weights) float64 {
	scores, weights := cats.Scores(), w.vector()
	var total float64
	for i := range scores {
		total += clamp(scores[i]) * weights[i]
	}
	return clamp(total)
}

// Classify buckets an overall index: <15 optimal, <30 mild, <50 moderate,
// <70 severe, otherwise critical.
func Classify(overall float64) Severity {
	switch {
	case overall < thresholdMild:
		return SeverityOptimal
	case overall < thresholdModerate:
		return SeverityMild
	case overall < thresholdSevere:
		return SeverityModerate
	case overall < thresholdCritical:
		return SeveritySevere
	default:
		return SeverityCritical
	}
}

// DominantStressor returns the highest scoring category. Ties go to the
// earliest category in Light, VPD, Nutrient, Thermal, Water order.
func DominantStressor(cats Categories) Category {
	scores := cats.Scores()
	best := CategoryLight
	for i := CategoryVPD; i < numCategories; i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

// PredictImpact estimates yield loss, quality impact and recovery time.
func PredictImpact(overall float64, cats Categories, stage GrowthStage) Impact {
	yield := math.Min(clamp(overall)*yieldMultiplier(stage), maxYieldReduction)

	hours := 0
	if cats.Light.Score > recoveryThreshold {
		hours += lightRecoveryHours
	}
	if cats.Nutrient.Score > recoveryThreshold {
		hours += nutrientRecoveryHours
	}
	if cats.VPD.Score > recoveryThreshold {
		hours += vpdRecoveryHours
	}

	return Impact{
		YieldReductionPct: yield,
		QualityImpact:     qualityImpact(overall),
		RecoveryHours:     hours,
	}
}

func yieldMultiplier(stage GrowthStage) float64 {
	switch stage {
	case Flowering:
		return 0.8
	case Vegetative:
		return 0.4
	default:
		return 0.6
	}
}

func qualityImpact(overall float64) string {
	switch {
	case overall < thresholdSevere:
		return "minimal"
	case overall < thresholdCritical:
		return "moderate"
	default:
		return "significant"
	}
}
