package stress

const (
	thermalWeightAmbient  = 0.25
	thermalWeightLeaf     = 0.50
	thermalWeightRootZone = 0.25

	rootZoneFactor = 0.8
)

// ScoreThermal rates ambient, leaf and approximated root-zone temperature.
// Leaf temperature dominates the category.
func ScoreThermal(env EnvironmentalReading, stage GrowthStage) ThermalScore {
	profile, _ := ProfileFor(stage)
	return scoreThermal(env, profile)
}

func scoreThermal(env EnvironmentalReading, p StageProfile) ThermalScore {
	ambient := Normalize(env.AirTemp, p.AirTemp)
	f := ThermalFactors{
		Ambient:  ambient,
		Leaf:     Normalize(env.LeafTemp, leafRange(p.AirTemp)),
		RootZone: clamp(ambient * rootZoneFactor),
	}
	score := f.Ambient*thermalWeightAmbient +
		f.Leaf*thermalWeightLeaf +
		f.RootZone*thermalWeightRootZone
	return ThermalScore{Score: clamp(score), Factors: f}
}
