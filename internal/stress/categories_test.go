package stress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLightPhotoinhibition(t *testing.T) {
	s := floweringStressed()
	got := ScoreLight(s.Environment, Flowering)

	assert.True(t, got.Factors.Photoinhibition)
	assert.InDelta(t, 76.667, got.Factors.Intensity, 1e-3)
	assert.InDelta(t, 0, got.Factors.Spectrum, 1e-9)
	assert.InDelta(t, 61.111, got.Factors.DLI, 1e-3)
	assert.InDelta(t, 59.056, got.Score, 1e-3)
}

func TestScoreLightPhotoinhibitionThreshold(t *testing.T) {
	env := vegetativeOptimal().Environment

	env.PPFD = 719
	assert.False(t, ScoreLight(env, Vegetative).Factors.Photoinhibition)

	env.PPFD = 721
	assert.True(t, ScoreLight(env, Vegetative).Factors.Photoinhibition)
}

func TestSpectrumStress(t *testing.T) {
	tests := []struct {
		name string
		s    Spectrum
		want float64
	}{
		{"ideal ratio", Spectrum{Red: 60, Blue: 20}, 0},
		{"no blue", Spectrum{Red: 60}, 100},
		{"half ideal ratio", Spectrum{Red: 30, Blue: 20}, 50},
		{"uv above threshold", Spectrum{Red: 60, Blue: 20, UV: 30}, 20},
		{"far red above ratio", Spectrum{Red: 60, Blue: 20, FarRed: 30}, 20},
		{"far red without red", Spectrum{Blue: 20, FarRed: 5}, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, spectrumStress(tc.s, 3.0), 1e-9)
		})
	}
}

func TestScoreVPD(t *testing.T) {
	s := floweringStressed()
	got := ScoreVPD(s.Environment, s.Plant)

	assert.InDelta(t, 72, got.Factors.Current, 1e-9)
	assert.InDelta(t, 25, got.Factors.LeafAirDifferential, 1e-9)
	assert.InDelta(t, 50, got.Factors.Transpiration, 1e-9)
	assert.InDelta(t, 53.5, got.Score, 1e-9)
}

func TestScoreThermal(t *testing.T) {
	s := floweringStressed()
	got := ScoreThermal(s.Environment, Flowering)

	assert.InDelta(t, 38.077, got.Factors.Ambient, 1e-3)
	assert.InDelta(t, 44, got.Factors.Leaf, 1e-9)
	assert.InDelta(t, 39.13, got.Score, 1e-2)
}

func TestScoreWaterLeafPotential(t *testing.T) {
	s := vegetativeOptimal()
	s.Plant.LeafWaterPotential = -3.0

	got := ScoreWater(s.Environment, s.Plant)
	assert.InDelta(t, 60, got.Factors.Potential, 1e-9)
	assert.InDelta(t, 0, got.Factors.Demand, 1e-9)
	assert.InDelta(t, 0, got.Factors.Hydraulic, 1e-9)
	assert.InDelta(t, 60, got.Score, 1e-9)
}

func TestScoreWaterTakesWorstFactor(t *testing.T) {
	s := floweringStressed()
	got := ScoreWater(s.Environment, s.Plant)

	assert.InDelta(t, 45, got.Factors.Demand, 1e-9)
	assert.InDelta(t, 60, got.Factors.Potential, 1e-9)
	assert.InDelta(t, 36.97, got.Factors.Hydraulic, 1e-2)
	assert.InDelta(t, 60, got.Score, 1e-9)
}

func TestScoreNutrient(t *testing.T) {
	s := floweringStressed()
	got := ScoreNutrient(s.Nutrients, Flowering)

	assert.InDelta(t, 67.5, got.Factors.Availability, 1e-9)
	assert.InDelta(t, 100, got.Factors.Balance, 1e-9)
	assert.InDelta(t, 55, got.Factors.Deficiency, 1e-9)
	assert.InDelta(t, 42.857, got.Factors.Toxicity, 1e-3)
	assert.InDelta(t, 68.179, got.Score, 1e-3)
}

func TestScoreNutrientBalancedSolution(t *testing.T) {
	got := ScoreNutrient(vegetativeOptimal().Nutrients, Vegetative)
	assert.Zero(t, got.Score)
	assert.Equal(t, NutrientFactors{}, got.Factors)
}

func TestCategoryScoresStayInBounds(t *testing.T) {
	extremes := []float64{-1e9, -50, -1, 0, 1e9, math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, stage := range append(Stages(), StageUnknown) {
		for _, v := range extremes {
			s := Snapshot{
				Environment: EnvironmentalReading{
					PPFD: v, DLI: v, PhotoperiodHours: v, VPD: v,
					AirTemp: v, LeafTemp: v, CO2: v, RelativeHumidity: v,
					Spectrum: Spectrum{Red: v, Blue: v, FarRed: v, UV: v},
				},
				Nutrients: NutrientReading{
					EC: v, PH: v,
					NutrientLevels: NutrientLevels{
						Nitrogen: v, Phosphorus: v, Potassium: v,
						Calcium: v, Magnesium: v, Sulfur: v,
					},
				},
				Plant: PlantState{
					Stage: stage, Chlorophyll: v, PhotosynthesisRate: v,
					StomatalConductance: v, SapFlow: v, LeafWaterPotential: v,
				},
			}

			r := Evaluate(s, fixedTime)
			for cat, score := range r.Categories.Scores() {
				assert.False(t, math.IsNaN(score), "stage=%s value=%v category=%s", stage, v, Category(cat))
				assert.GreaterOrEqual(t, score, 0.0, "stage=%s value=%v category=%s", stage, v, Category(cat))
				assert.LessOrEqual(t, score, 100.0, "stage=%s value=%v category=%s", stage, v, Category(cat))
			}
			assert.GreaterOrEqual(t, r.Overall, 0.0)
			assert.LessOrEqual(t, r.Overall, 100.0)
			assert.LessOrEqual(t, len(r.Recommendations), 3)
		}
	}
}
