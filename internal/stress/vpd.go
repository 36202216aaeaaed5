package stress

import "math"

const (
	vpdWeightCurrent       = 0.50
	vpdWeightDifferential  = 0.30
	vpdWeightTranspiration = 0.20

	idealLeafAirDeltaFlowering = -1.5
	idealLeafAirDelta          = -2.0
	leafAirDeltaScale          = 10.0

	// Stomatal conductance (mmol m⁻² s⁻¹) expected at zero VPD and the drop per kPa.
	conductanceAtZeroVPD = 400.0
	conductancePerKPa    = 100.0
	minExpectedConduct   = 50.0
)

// ScoreVPD rates atmospheric drying demand, the leaf-to-air temperature
// differential and transpiration load against the stage profile.
func ScoreVPD(env EnvironmentalReading, plant PlantState) VPDScore {
	profile, _ := ProfileFor(plant.Stage)
	return scoreVPD(env, plant, profile)
}

func scoreVPD(env EnvironmentalReading, plant PlantState, p StageProfile) VPDScore {
	ideal := idealLeafAirDelta
	if p.Stage == Flowering {
		ideal = idealLeafAirDeltaFlowering
	}
	delta := env.LeafTemp - env.AirTemp

	f := VPDFactors{
		Current:             Normalize(env.VPD, p.VPD),
		LeafAirDifferential: clamp(math.Abs(delta-ideal) * leafAirDeltaScale),
		Transpiration:       transpirationStress(env.VPD, plant.StomatalConductance),
	}
	score := f.Current*vpdWeightCurrent +
		f.LeafAirDifferential*vpdWeightDifferential +
		f.Transpiration*vpdWeightTranspiration
	return VPDScore{Score: clamp(score), Factors: f}
}

// expectedConductance is the stomatal conductance a healthy canopy holds at vpd.
func expectedConductance(vpd float64) float64 {
	return math.Max(conductanceAtZeroVPD-conductancePerKPa*math.Max(vpd, 0), minExpectedConduct)
}

// transpirationStress is the percentage by which actual conductance falls
// short of the expected value; conductance at or above expectation scores 0.
func transpirationStress(vpd, conductance float64) float64 {
	expected := expectedConductance(vpd)
	if conductance >= expected {
		return 0
	}
	return clamp((expected - conductance) / expected * 100)
}
