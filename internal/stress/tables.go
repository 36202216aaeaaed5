package stress

// Range is an acceptable band for a reading with its ideal point.
type Range struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Optimal float64 `json:"optimal" yaml:"optimal"`
}

// NutrientLevels holds one value per tracked macro/secondary nutrient, in ppm.
type NutrientLevels struct {
	Nitrogen   float64 `json:"n" yaml:"n"`
	Phosphorus float64 `json:"p" yaml:"p"`
	Potassium  float64 `json:"k" yaml:"k"`
	Calcium    float64 `json:"ca" yaml:"ca"`
	Magnesium  float64 `json:"mg" yaml:"mg"`
	Sulfur     float64 `json:"s" yaml:"s"`
}

func (n NutrientLevels) values() [6]float64 {
	return [6]float64{n.Nitrogen, n.Phosphorus, n.Potassium, n.Calcium, n.Magnesium, n.Sulfur}
}

// Weights are the per-category contributions to the overall index.
type Weights struct {
	Light    float64 `json:"light" yaml:"light"`
	VPD      float64 `json:"vpd" yaml:"vpd"`
	Nutrient float64 `json:"nutrient" yaml:"nutrient"`
	Thermal  float64 `json:"thermal" yaml:"thermal"`
	Water    float64 `json:"water" yaml:"water"`
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Light + w.VPD + w.Nutrient + w.Thermal + w.Water
}

func (w Weights) vector() [numCategories]float64 {
	return [numCategories]float64{w.Light, w.VPD, w.Nutrient, w.Thermal, w.Water}
}

// StageProfile is the full set of stage-dependent constants used by the scorers.
type StageProfile struct {
	Stage            GrowthStage    `json:"stage" yaml:"stage"`
	PPFD             Range          `json:"ppfd" yaml:"ppfd"`
	Photoperiod      Range          `json:"photoperiod_hours" yaml:"photoperiod_hours"`
	DLI              Range          `json:"dli" yaml:"dli"`
	VPD              Range          `json:"vpd" yaml:"vpd"`
	AirTemp          Range          `json:"air_temp_c" yaml:"air_temp_c"`
	RedBlueRatio     float64        `json:"red_blue_ratio" yaml:"red_blue_ratio"`
	IdealEC          float64        `json:"ideal_ec" yaml:"ideal_ec"`
	NutrientMinimums NutrientLevels `json:"nutrient_minimums" yaml:"nutrient_minimums"`
	BaseSapFlow      float64        `json:"base_sap_flow" yaml:"base_sap_flow"`
	Weights          Weights        `json:"weights" yaml:"weights"`
}

// nutrientMaximums are stage independent toxicity thresholds in ppm.
var nutrientMaximums = NutrientLevels{
	Nitrogen:   300,
	Phosphorus: 100,
	Potassium:  350,
	Calcium:    250,
	Magnesium:  100,
	Sulfur:     150,
}

// NutrientMaximums returns the fixed toxicity thresholds.
func NutrientMaximums() NutrientLevels {
	return nutrientMaximums
}

var stageProfiles = [...]StageProfile{
	Seedling: {
		Stage:            Seedling,
		PPFD:             Range{Min: 100, Max: 300, Optimal: 200},
		Photoperiod:      Range{Min: 16, Max: 20, Optimal: 18},
		DLI:              Range{Min: 6, Max: 18, Optimal: 12},
		VPD:              Range{Min: 0.4, Max: 0.8, Optimal: 0.6},
		AirTemp:          Range{Min: 22, Max: 26, Optimal: 24},
		RedBlueRatio:     2.0,
		IdealEC:          0.8,
		NutrientMinimums: NutrientLevels{Nitrogen: 80, Phosphorus: 25, Potassium: 80, Calcium: 80, Magnesium: 25, Sulfur: 30},
		BaseSapFlow:      20,
		Weights:          Weights{Light: 0.25, VPD: 0.20, Nutrient: 0.15, Thermal: 0.25, Water: 0.15},
	},
	Vegetative: {
		Stage:            Vegetative,
		PPFD:             Range{Min: 300, Max: 600, Optimal: 450},
		Photoperiod:      Range{Min: 16, Max: 20, Optimal: 18},
		DLI:              Range{Min: 20, Max: 40, Optimal: 30},
		VPD:              Range{Min: 0.8, Max: 1.2, Optimal: 1.0},
		AirTemp:          Range{Min: 22, Max: 28, Optimal: 25},
		RedBlueRatio:     3.0,
		IdealEC:          1.6,
		NutrientMinimums: NutrientLevels{Nitrogen: 150, Phosphorus: 40, Potassium: 150, Calcium: 120, Magnesium: 40, Sulfur: 50},
		BaseSapFlow:      50,
		Weights:          Weights{Light: 0.30, VPD: 0.20, Nutrient: 0.20, Thermal: 0.15, Water: 0.15},
	},
	PreFlower: {
		Stage:            PreFlower,
		PPFD:             Range{Min: 500, Max: 800, Optimal: 650},
		Photoperiod:      Range{Min: 11, Max: 13, Optimal: 12},
		DLI:              Range{Min: 22, Max: 38, Optimal: 28},
		VPD:              Range{Min: 1.0, Max: 1.4, Optimal: 1.2},
		AirTemp:          Range{Min: 21, Max: 27, Optimal: 24},
		RedBlueRatio:     4.0,
		IdealEC:          1.8,
		NutrientMinimums: NutrientLevels{Nitrogen: 130, Phosphorus: 50, Potassium: 180, Calcium: 120, Magnesium: 45, Sulfur: 55},
		BaseSapFlow:      70,
		Weights:          Weights{Light: 0.25, VPD: 0.20, Nutrient: 0.20, Thermal: 0.15, Water: 0.20},
	},
	Flowering: {
		Stage:            Flowering,
		PPFD:             Range{Min: 600, Max: 900, Optimal: 750},
		Photoperiod:      Range{Min: 11, Max: 13, Optimal: 12},
		DLI:              Range{Min: 30, Max: 45, Optimal: 38},
		VPD:              Range{Min: 1.0, Max: 1.5, Optimal: 1.2},
		AirTemp:          Range{Min: 20, Max: 26, Optimal: 23},
		RedBlueRatio:     5.0,
		IdealEC:          2.0,
		NutrientMinimums: NutrientLevels{Nitrogen: 100, Phosphorus: 60, Potassium: 200, Calcium: 120, Magnesium: 50, Sulfur: 60},
		BaseSapFlow:      80,
		Weights:          Weights{Light: 0.20, VPD: 0.25, Nutrient: 0.20, Thermal: 0.15, Water: 0.20},
	},
	Ripening: {
		Stage:            Ripening,
		PPFD:             Range{Min: 400, Max: 700, Optimal: 550},
		Photoperiod:      Range{Min: 10, Max: 12, Optimal: 11},
		DLI:              Range{Min: 18, Max: 32, Optimal: 24},
		VPD:              Range{Min: 1.2, Max: 1.6, Optimal: 1.4},
		AirTemp:          Range{Min: 18, Max: 24, Optimal: 21},
		RedBlueRatio:     5.0,
		IdealEC:          1.2,
		NutrientMinimums: NutrientLevels{Nitrogen: 60, Phosphorus: 40, Potassium: 150, Calcium: 100, Magnesium: 40, Sulfur: 45},
		BaseSapFlow:      60,
		Weights:          Weights{Light: 0.20, VPD: 0.20, Nutrient: 0.15, Thermal: 0.20, Water: 0.25},
	},
}

// ProfileFor returns the constants for stage. Stages outside the table fall
// back to the vegetative profile and fallback is reported as true.
func ProfileFor(stage GrowthStage) (profile StageProfile, fallback bool) {
	if !stage.Known() {
		return stageProfiles[Vegetative], true
	}
	return stageProfiles[stage], false
}

// Profiles returns a copy of every stage profile in lifecycle order.
func Profiles() []StageProfile {
	out := make([]StageProfile, 0, len(stageProfiles)-1)
	for _, stage := range Stages() {
		out = append(out, stageProfiles[stage])
	}
	return out
}

// leafRange offsets the ambient band 1–2 °C downward: leaves run cooler than air
// under active transpiration.
func leafRange(air Range) Range {
	return Range{Min: air.Min - 2, Max: air.Max - 1, Optimal: air.Optimal - 1.5}
}

func nutrientReference(lo, hi float64) float64 {
	return (lo + hi) / 2
}
