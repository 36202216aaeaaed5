package stress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func series(prior, recent float64) []float64 {
	out := make([]float64, 0, 20)
	for i := 0; i < 10; i++ {
		out = append(out, prior)
	}
	for i := 0; i < 10; i++ {
		out = append(out, recent)
	}
	return out
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name    string
		indices []float64
		want    Trend
	}{
		{"falling stress improves", series(40, 30), TrendImproving},
		{"small rise is stable", series(40, 43), TrendStable},
		{"dead zone edge is stable", series(40, 35), TrendStable},
		{"rising stress declines", series(40, 50), TrendDeclining},
		{"no prior window", []float64{10, 90, 10, 90, 10}, TrendStable},
		{"empty", nil, TrendStable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrendOf(tc.indices))
		})
	}
}

func TestTrendOfUsesLastTwoWindowsOnly(t *testing.T) {
	indices := append([]float64{100, 100, 100, 100, 100}, series(20, 20)...)
	assert.Equal(t, TrendStable, TrendOf(indices))
}

func TestSummarize(t *testing.T) {
	got := Summarize([]float64{10, 20, 50, 40, 80})

	assert.Equal(t, 5, got.Count)
	assert.InDelta(t, 40, got.Mean, 1e-9)
	assert.InDelta(t, 80, got.Peak, 1e-9)
	assert.Equal(t, 2, got.SevereCount)
	assert.Equal(t, TrendStable, got.Trend)
	assert.GreaterOrEqual(t, got.P90, 50.0)
	assert.LessOrEqual(t, got.P90, 80.0)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, HistorySummary{Trend: TrendStable}, Summarize(nil))
}

func TestOverallIndices(t *testing.T) {
	results := []Result{{Overall: 3}, {Overall: 1}, {Overall: 2}}
	assert.Equal(t, []float64{3, 1, 2}, OverallIndices(results))
}
