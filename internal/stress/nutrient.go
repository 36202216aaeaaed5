package stress

import "math"

const (
	nutrientWeightAvailability = 0.30
	nutrientWeightBalance      = 0.25
	nutrientWeightDeficiency   = 0.30
	nutrientWeightToxicity     = 0.15

	idealPH          = 6.0
	phScale          = 50.0
	balanceThreshold = 0.3
)

// ScoreNutrient rates solution availability (EC and pH), N/P/K balance,
// deficiencies below the stage minimums and toxicities above the fixed maximums.
func ScoreNutrient(n NutrientReading, stage GrowthStage) NutrientScore {
	profile, _ := ProfileFor(stage)
	return scoreNutrient(n, profile)
}

func scoreNutrient(n NutrientReading, p StageProfile) NutrientScore {
	f := NutrientFactors{
		Availability: availabilityStress(n.EC, n.PH, p.IdealEC),
		Balance:      balanceStress(n.NutrientLevels, p.NutrientMinimums),
		Deficiency:   deficiencyStress(n.NutrientLevels, p.NutrientMinimums),
		Toxicity:     toxicityStress(n.NutrientLevels),
	}
	score := f.Availability*nutrientWeightAvailability +
		f.Balance*nutrientWeightBalance +
		f.Deficiency*nutrientWeightDeficiency +
		f.Toxicity*nutrientWeightToxicity
	return NutrientScore{Score: clamp(score), Factors: f}
}

// availabilityStress averages the relative EC deviation and the pH deviation
// from 6.0, each capped at 100.
func availabilityStress(ec, ph, idealEC float64) float64 {
	ecStress := scoreCeiling
	if idealEC > 0 {
		ecStress = clamp(math.Abs(ec-idealEC) / idealEC * 100)
	}
	phStress := clamp(math.Abs(ph-idealPH) * phScale)
	return (ecStress + phStress) / 2
}

// balanceStress normalizes N, P and K against the midpoint of their stage
// minimum and fixed maximum and scores the spread between the largest and
// smallest ratio. Spreads under 30% are tolerated.
func balanceStress(levels, minimums NutrientLevels) float64 {
	refs := [3]float64{
		nutrientReference(minimums.Nitrogen, nutrientMaximums.Nitrogen),
		nutrientReference(minimums.Phosphorus, nutrientMaximums.Phosphorus),
		nutrientReference(minimums.Potassium, nutrientMaximums.Potassium),
	}
	vals := [3]float64{levels.Nitrogen, levels.Phosphorus, levels.Potassium}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range vals {
		ratio := vals[i] / refs[i]
		lo = math.Min(lo, ratio)
		hi = math.Max(hi, ratio)
	}
	spread := hi - lo
	if spread < balanceThreshold {
		return 0
	}
	return clamp(spread * 100)
}

// deficiencyStress is the mean percentage shortfall over the nutrients that
// sit below their stage minimum.
func deficiencyStress(levels, minimums NutrientLevels) float64 {
	vals, mins := levels.values(), minimums.values()
	var total float64
	var count int
	for i := range vals {
		if mins[i] <= 0 || vals[i] >= mins[i] {
			continue
		}
		total += clamp((mins[i] - vals[i]) / mins[i] * 100)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// toxicityStress is the mean percentage excess over the nutrients above their
// fixed maximum.
func toxicityStress(levels NutrientLevels) float64 {
	vals, maxs := levels.values(), nutrientMaximums.values()
	var total float64
	var count int
	for i := range vals {
		if vals[i] <= maxs[i] {
			continue
		}
		total += clamp((vals[i] - maxs[i]) / maxs[i] * 100)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
