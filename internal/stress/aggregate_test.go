package stress

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestEvaluateOptimalVegetative(t *testing.T) {
	r := Evaluate(vegetativeOptimal(), fixedTime)

	assert.Equal(t, fixedTime, r.Timestamp)
	assert.Equal(t, Vegetative, r.Stage)
	assert.False(t, r.StageFallback)
	assert.InDelta(t, 0.321, r.Overall, 1e-3)
	assert.Equal(t, SeverityOptimal, r.Severity)
	assert.NotNil(t, r.Recommendations)
	assert.Empty(t, r.Recommendations)
	assert.Zero(t, r.Impact.RecoveryHours)
	assert.Equal(t, "minimal", r.Impact.QualityImpact)
}

func TestEvaluateStressedFlowering(t *testing.T) {
	r := Evaluate(floweringStressed(), fixedTime)

	assert.InDelta(t, 56.69, r.Overall, 1e-2)
	assert.Equal(t, SeveritySevere, r.Severity)
	assert.Equal(t, CategoryNutrient, r.Dominant)

	require.Len(t, r.Recommendations, 3)
	assert.Contains(t, r.Recommendations[0], "Photoinhibition")

	assert.InDelta(t, 45.35, r.Impact.YieldReductionPct, 1e-2)
	assert.Equal(t, "moderate", r.Impact.QualityImpact)
	assert.Equal(t, 84, r.Impact.RecoveryHours)
}

func TestEvaluateWaterStressOnly(t *testing.T) {
	s := vegetativeOptimal()
	s.Plant.LeafWaterPotential = -3.0

	r := Evaluate(s, fixedTime)
	assert.InDelta(t, 60, r.Categories.Water.Score, 1e-9)
	assert.Equal(t, CategoryWater, r.Dominant)
	require.Len(t, r.Recommendations, 1)
	assert.Contains(t, r.Recommendations[0], "Irrigate")
}

func TestEvaluateUnknownStageFallsBack(t *testing.T) {
	s := vegetativeOptimal()
	want := Evaluate(s, fixedTime)

	s.Plant.Stage = StageUnknown
	got := Evaluate(s, fixedTime)

	assert.True(t, got.StageFallback)
	assert.Equal(t, Vegetative, got.Stage)
	got.StageFallback = false
	assert.Equal(t, want, got)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	s := floweringStressed()
	assert.Equal(t, Evaluate(s, fixedTime), Evaluate(s, fixedTime))
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		overall float64
		want    Severity
	}{
		{0, SeverityOptimal},
		{14.999, SeverityOptimal},
		{15, SeverityMild},
		{29.999, SeverityMild},
		{30, SeverityModerate},
		{50, SeveritySevere},
		{69.999, SeveritySevere},
		{70, SeverityCritical},
		{100, SeverityCritical},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Classify(tc.overall), "overall=%v", tc.overall)
	}
}

func TestSeverityAtLeast(t *testing.T) {
	assert.True(t, SeverityCritical.AtLeast(SeveritySevere))
	assert.True(t, SeveritySevere.AtLeast(SeveritySevere))
	assert.False(t, SeverityModerate.AtLeast(SeveritySevere))
}

func TestDominantStressorTieGoesToEarliest(t *testing.T) {
	cats := Categories{
		Light: LightScore{Score: 40},
		VPD:   VPDScore{Score: 40},
		Water: WaterScore{Score: 10},
	}
	assert.Equal(t, CategoryLight, DominantStressor(cats))

	cats.VPD.Score = 50
	cats.Water.Score = 50
	assert.Equal(t, CategoryVPD, DominantStressor(cats))
}

func TestAggregateClampsInputs(t *testing.T) {
	w := Weights{Light: 0.2, VPD: 0.2, Nutrient: 0.2, Thermal: 0.2, Water: 0.2}
	cats := Categories{
		Light:    LightScore{Score: 250},
		VPD:      VPDScore{Score: -40},
		Nutrient: NutrientScore{Score: 50},
	}
	assert.InDelta(t, 30, Aggregate(cats, w), 1e-9)
}

func TestPredictImpactCapsYield(t *testing.T) {
	got := PredictImpact(100, Categories{}, Flowering)
	assert.InDelta(t, 80, got.YieldReductionPct, 1e-9)
	assert.Equal(t, "significant", got.QualityImpact)

	got = PredictImpact(50, Categories{}, Vegetative)
	assert.InDelta(t, 20, got.YieldReductionPct, 1e-9)

	got = PredictImpact(50, Categories{}, Ripening)
	assert.InDelta(t, 30, got.YieldReductionPct, 1e-9)
}

func TestRecommendCapsAtThree(t *testing.T) {
	s := floweringStressed()
	s.Environment.PhotoperiodHours = 20
	s.Environment.Spectrum = Spectrum{Red: 10, Blue: 40, UV: 40, FarRed: 20}

	r := Evaluate(s, fixedTime)
	assert.Len(t, r.Recommendations, 3)
}

func TestResultJSONUsesNames(t *testing.T) {
	raw, err := json.Marshal(Evaluate(floweringStressed(), fixedTime))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "flowering", decoded["stage"])
	assert.Equal(t, "nutrient", decoded["dominant_stressor"])
	assert.Equal(t, "severe", decoded["severity"])

	var back Result
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, CategoryNutrient, back.Dominant)
	assert.Equal(t, Flowering, back.Stage)
}
