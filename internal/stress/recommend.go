package stress

import "fmt"

const (
	recommendThreshold = 30.0
	maxRecommendations = 3
	factorThreshold    = 30.0
)

// Recommend builds the corrective actions for every category scoring above 30,
// in Light, VPD, Nutrient, Thermal, Water order, keeping at most three.
func Recommend(s Snapshot, cats Categories, p StageProfile) []string {
	out := make([]string, 0, maxRecommendations)
	candidates := [numCategories]func() []string{
		func() []string { return lightActions(s.Environment, cats.Light, p) },
		func() []string { return vpdActions(s.Environment, cats.VPD, p) },
		func() []string { return nutrientActions(s.Nutrients, cats.Nutrient, p) },
		func() []string { return thermalActions(s.Environment, cats.Thermal, p) },
		func() []string { return waterActions(s.Plant, cats.Water) },
	}

	scores := cats.Scores()
	for i, build := range candidates {
		if scores[i] <= recommendThreshold {
			continue
		}
		for _, action := range build() {
			if len(out) == maxRecommendations {
				return out
			}
			out = append(out, action)
		}
	}
	return out
}

func lightActions(env EnvironmentalReading, l LightScore, p StageProfile) []string {
	var out []string
	if l.Factors.Photoinhibition {
		out = append(out, fmt.Sprintf("Photoinhibition risk: dim fixtures below %.0f µmol/m²/s immediately", p.PPFD.Max))
	}
	if l.Factors.Intensity > factorThreshold {
		if env.PPFD > p.PPFD.Max {
			out = append(out, fmt.Sprintf("Reduce PPFD toward %.0f µmol/m²/s", p.PPFD.Optimal))
		} else if env.PPFD < p.PPFD.Min {
			out = append(out, fmt.Sprintf("Increase PPFD toward %.0f µmol/m²/s", p.PPFD.Optimal))
		}
	}
	if l.Factors.Photoperiod > factorThreshold {
		out = append(out, fmt.Sprintf("Adjust photoperiod to %.0f hours", p.Photoperiod.Optimal))
	}
	if l.Factors.Spectrum > factorThreshold {
		out = append(out, fmt.Sprintf("Rebalance spectrum toward a %.1f:1 red:blue ratio and trim UV/far-red", p.RedBlueRatio))
	}
	if l.Factors.DLI > factorThreshold {
		out = append(out, fmt.Sprintf("Bring daily light integral toward %.0f mol/m²/day", p.DLI.Optimal))
	}
	return out
}

func vpdActions(env EnvironmentalReading, v VPDScore, p StageProfile) []string {
	var out []string
	if v.Factors.Current > factorThreshold {
		if env.VPD > p.VPD.Max {
			out = append(out, "Raise humidity or lower air temperature to reduce VPD")
		} else {
			out = append(out, "Dehumidify or increase air movement to raise VPD")
		}
	}
	if v.Factors.LeafAirDifferential > factorThreshold {
		out = append(out, "Check leaf-air temperature differential; adjust airflow across the canopy")
	}
	if v.Factors.Transpiration > factorThreshold {
		out = append(out, "Stomata are closing under current demand; ease VPD gradually")
	}
	return out
}

func nutrientActions(n NutrientReading, ns NutrientScore, p StageProfile) []string {
	var out []string
	if ns.Factors.Deficiency > 0 {
		out = append(out, "Correct nutrient deficiencies with a stage-appropriate feed")
	}
	if ns.Factors.Toxicity > 0 {
		out = append(out, "Flush the root zone to clear nutrient excess")
	}
	if ns.Factors.Availability > factorThreshold {
		out = append(out, fmt.Sprintf("Adjust EC toward %.1f mS/cm and pH toward %.1f (now %.1f / %.1f)", p.IdealEC, idealPH, n.EC, n.PH))
	}
	if ns.Factors.Balance > 0 {
		out = append(out, "Rebalance the N-P-K ratio")
	}
	return out
}

func thermalActions(env EnvironmentalReading, t ThermalScore, p StageProfile) []string {
	var out []string
	if t.Factors.Ambient > factorThreshold {
		if env.AirTemp > p.AirTemp.Max {
			out = append(out, fmt.Sprintf("Lower air temperature toward %.0f °C", p.AirTemp.Optimal))
		} else {
			out = append(out, fmt.Sprintf("Raise air temperature toward %.0f °C", p.AirTemp.Optimal))
		}
	}
	if t.Factors.Leaf > factorThreshold {
		out = append(out, "Leaf temperature out of range; check radiant load and transpiration")
	}
	return out
}

func waterActions(plant PlantState, w WaterScore) []string {
	var out []string
	if w.Factors.Potential > 0 {
		out = append(out, fmt.Sprintf("Irrigate: leaf water potential at %.1f MPa", plant.LeafWaterPotential))
	}
	if w.Factors.Demand > 0 {
		out = append(out, "Reduce evaporative demand to limit water loss")
	}
	if w.Factors.Hydraulic > 0 {
		out = append(out, "Sap flow below expectation; inspect roots and irrigation lines")
	}
	return out
}
