package stress

import (
	"fmt"
	"time"
)

// Spectrum holds band shares as percentages of total photon flux.
type Spectrum struct {
	Red    float64 `json:"red" yaml:"red"`
	Blue   float64 `json:"blue" yaml:"blue"`
	FarRed float64 `json:"far_red" yaml:"far_red"`
	UV     float64 `json:"uv" yaml:"uv"`
}

// EnvironmentalReading is a point-in-time canopy climate snapshot.
type EnvironmentalReading struct {
	PPFD             float64  `json:"ppfd" yaml:"ppfd"`
	DLI              float64  `json:"dli" yaml:"dli"`
	PhotoperiodHours float64  `json:"photoperiod_hours" yaml:"photoperiod_hours"`
	Spectrum         Spectrum `json:"spectrum" yaml:"spectrum"`
	VPD              float64  `json:"vpd" yaml:"vpd"`
	AirTemp          float64  `json:"air_temp_c" yaml:"air_temp_c"`
	LeafTemp         float64  `json:"leaf_temp_c" yaml:"leaf_temp_c"`
	CO2              float64  `json:"co2_ppm" yaml:"co2_ppm"`
	RelativeHumidity float64  `json:"relative_humidity" yaml:"relative_humidity"`
}

// NutrientReading is a root-zone solution sample.
type NutrientReading struct {
	EC             float64 `json:"ec" yaml:"ec"`
	PH             float64 `json:"ph" yaml:"ph"`
	NutrientLevels `yaml:",inline"`
}

// PlantState carries the plant-side measurements and the current stage.
type PlantState struct {
	Stage               GrowthStage `json:"stage" yaml:"stage"`
	CultivarID          string      `json:"cultivar_id,omitempty" yaml:"cultivar_id,omitempty"`
	Chlorophyll         float64     `json:"chlorophyll" yaml:"chlorophyll"`
	PhotosynthesisRate  float64     `json:"photosynthesis_rate" yaml:"photosynthesis_rate"`
	StomatalConductance float64     `json:"stomatal_conductance" yaml:"stomatal_conductance"`
	SapFlow             float64     `json:"sap_flow" yaml:"sap_flow"`
	LeafWaterPotential  float64     `json:"leaf_water_potential" yaml:"leaf_water_potential"`
}

// Snapshot bundles the three readings a single evaluation consumes.
type Snapshot struct {
	Environment EnvironmentalReading `json:"environment" yaml:"environment"`
	Nutrients   NutrientReading      `json:"nutrients" yaml:"nutrients"`
	Plant       PlantState           `json:"plant" yaml:"plant"`
}

// Category identifies one of the five stress dimensions.
type Category uint8

const (
	CategoryLight Category = iota
	CategoryVPD
	CategoryNutrient
	CategoryThermal
	CategoryWater
	numCategories
)

var categoryNames = [numCategories]string{"light", "vpd", "nutrient", "thermal", "water"}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return "unknown"
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name written by MarshalText.
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stress category %q", text)
}

// Severity buckets the overall index.
type Severity string

const (
	SeverityOptimal  Severity = "optimal"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// AtLeast reports whether s is as bad as or worse than other.
func (s Severity) AtLeast(other Severity) bool {
	return severityRank(s) >= severityRank(other)
}

func severityRank(s Severity) int {
	switch s {
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// LightFactors is the breakdown behind the light score.
type LightFactors struct {
	Intensity       float64 `json:"intensity"`
	Photoperiod     float64 `json:"photoperiod"`
	Spectrum        float64 `json:"spectrum"`
	DLI             float64 `json:"dli"`
	Photoinhibition bool    `json:"photoinhibition"`
}

// VPDFactors is the breakdown behind the VPD score.
type VPDFactors struct {
	Current             float64 `json:"current"`
	LeafAirDifferential float64 `json:"leaf_air_differential"`
	Transpiration       float64 `json:"transpiration"`
}

// NutrientFactors is the breakdown behind the nutrient score.
type NutrientFactors struct {
	Availability float64 `json:"availability"`
	Balance      float64 `json:"balance"`
	Deficiency   float64 `json:"deficiency"`
	Toxicity     float64 `json:"toxicity"`
}

// ThermalFactors is the breakdown behind the thermal score.
type ThermalFactors struct {
	Ambient  float64 `json:"ambient"`
	Leaf     float64 `json:"leaf"`
	RootZone float64 `json:"root_zone"`
}

// WaterFactors is the breakdown behind the water score.
type WaterFactors struct {
	Demand    float64 `json:"demand"`
	Potential float64 `json:"potential"`
	Hydraulic float64 `json:"hydraulic"`
}

type LightScore struct {
	Score   float64      `json:"score"`
	Factors LightFactors `json:"factors"`
}

type VPDScore struct {
	Score   float64    `json:"score"`
	Factors VPDFactors `json:"factors"`
}

type NutrientScore struct {
	Score   float64         `json:"score"`
	Factors NutrientFactors `json:"factors"`
}

type ThermalScore struct {
	Score   float64        `json:"score"`
	Factors ThermalFactors `json:"factors"`
}

type WaterScore struct {
	Score   float64      `json:"score"`
	Factors WaterFactors `json:"factors"`
}

// Categories groups the five category scores.
type Categories struct {
	Light    LightScore    `json:"light"`
	VPD      VPDScore      `json:"vpd"`
	Nutrient NutrientScore `json:"nutrient"`
	Thermal  ThermalScore  `json:"thermal"`
	Water    WaterScore    `json:"water"`
}

// Scores returns the category scores in aggregation order.
func (c Categories) Scores() [numCategories]float64 {
	return [numCategories]float64{c.Light.Score, c.VPD.Score, c.Nutrient.Score, c.Thermal.Score, c.Water.Score}
}

// Score returns a single category score by identifier.
func (c Categories) Score(cat Category) float64 {
	if cat >= numCategories {
		return 0
	}
	return c.Scores()[cat]
}

// Impact is the predicted consequence of sustained stress at the current level.
type Impact struct {
	YieldReductionPct float64 `json:"yield_reduction_pct"`
	QualityImpact     string  `json:"quality_impact"`
	RecoveryHours     int     `json:"recovery_hours"`
}

// Result is the outcome of one evaluation. It is never mutated after Evaluate returns.
type Result struct {
	Timestamp       time.Time   `json:"timestamp"`
	Stage           GrowthStage `json:"stage"`
	StageFallback   bool        `json:"stage_fallback"`
	Overall         float64     `json:"overall"`
	Categories      Categories  `json:"categories"`
	Severity        Severity    `json:"severity"`
	Dominant        Category    `json:"dominant_stressor"`
	Recommendations []string    `json:"recommendations"`
	Impact          Impact      `json:"impact"`
}
