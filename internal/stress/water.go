package stress

import "math"

const (
	demandVPDThreshold = 1.5
	demandScale        = 50.0

	waterPotentialThreshold = -1.5
	waterPotentialScale     = 40.0

	hydraulicShare = 0.7
)

// ScoreWater takes the worst of three independent water stresses: VPD-driven
// demand, leaf water potential and hydraulic (sap flow) shortfall. Unlike the
// other categories this is a maximum, not a weighted sum.
func ScoreWater(env EnvironmentalReading, plant PlantState) WaterScore {
	profile, _ := ProfileFor(plant.Stage)
	return scoreWater(env, plant, profile)
}

func scoreWater(env EnvironmentalReading, plant PlantState, p StageProfile) WaterScore {
	f := WaterFactors{
		Demand:    demandStress(env.VPD),
		Potential: potentialStress(plant.LeafWaterPotential),
		Hydraulic: hydraulicStress(plant.SapFlow, expectedSapFlow(p.BaseSapFlow, env.VPD)),
	}
	score := math.Max(f.Demand, math.Max(f.Potential, f.Hydraulic))
	return WaterScore{Score: clamp(score), Factors: f}
}

func demandStress(vpd float64) float64 {
	if vpd <= demandVPDThreshold {
		return 0
	}
	return clamp((vpd - demandVPDThreshold) * demandScale)
}

// potentialStress grows linearly once leaf water potential drops below -1.5 MPa.
func potentialStress(psi float64) float64 {
	if psi >= waterPotentialThreshold {
		return 0
	}
	return clamp(math.Abs(psi-waterPotentialThreshold) * waterPotentialScale)
}

// expectedSapFlow scales the stage baseline with evaporative demand.
func expectedSapFlow(base, vpd float64) float64 {
	return base * (0.5 + 0.5*math.Max(vpd, 0))
}

func hydraulicStress(actual, expected float64) float64 {
	floor := expected * hydraulicShare
	if floor <= 0 || actual >= floor {
		return 0
	}
	return clamp((floor - actual) / floor * 100)
}
