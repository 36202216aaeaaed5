package stress

import "math"

const (
	lightWeightIntensity   = 0.35
	lightWeightPhotoperiod = 0.25
	lightWeightSpectrum    = 0.20
	lightWeightDLI         = 0.20

	photoinhibitionRatio = 1.2
	uvThreshold          = 20.0
	farRedRatioThreshold = 0.3
)

// ScoreLight rates light intensity, photoperiod, spectral balance and daily
// light integral against the stage profile. PPFD above 120% of the stage
// maximum adds a flat photoinhibition penalty before clamping.
func ScoreLight(env EnvironmentalReading, stage GrowthStage) LightScore {
	profile, _ := ProfileFor(stage)
	return scoreLight(env, profile)
}

func scoreLight(env EnvironmentalReading, p StageProfile) LightScore {
	f := LightFactors{
		Intensity:       Normalize(env.PPFD, p.PPFD),
		Photoperiod:     Normalize(env.PhotoperiodHours, p.Photoperiod),
		Spectrum:        spectrumStress(env.Spectrum, p.RedBlueRatio),
		DLI:             Normalize(env.DLI, p.DLI),
		Photoinhibition: env.PPFD > p.PPFD.Max*photoinhibitionRatio,
	}

	score := f.Intensity*lightWeightIntensity +
		f.Photoperiod*lightWeightPhotoperiod +
		f.Spectrum*lightWeightSpectrum +
		f.DLI*lightWeightDLI
	if f.Photoinhibition {
		score += photoinhibition
	}
	return LightScore{Score: clamp(score), Factors: f}
}

// spectrumStress combines the relative red:blue deviation from the stage ideal
// with penalties for UV above 20% and a far-red:red ratio above 0.3.
func spectrumStress(s Spectrum, idealRedBlue float64) float64 {
	var stress float64
	if s.Blue <= 0 || idealRedBlue <= 0 {
		stress = scoreCeiling
	} else {
		stress = math.Abs(s.Red/s.Blue-idealRedBlue) / idealRedBlue * 100
	}

	if s.UV > uvThreshold {
		stress += (s.UV - uvThreshold) * 2
	}
	if s.Red > 0 {
		if ratio := s.FarRed / s.Red; ratio > farRedRatioThreshold {
			stress += (ratio - farRedRatioThreshold) * 100
		}
	} else if s.FarRed > 0 {
		stress += scoreCeiling
	}
	return clamp(stress)
}
