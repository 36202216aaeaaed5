package stress

import (
	"github.com/montanaflynn/stats"
)

// Trend is the direction of stress over recent evaluations.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

const (
	trendWindow   = 10
	trendDeadZone = 5.0
)

// HistorySummary describes a chronological run of overall indices.
type HistorySummary struct {
	Count       int     `json:"count"`
	Mean        float64 `json:"mean"`
	Peak        float64 `json:"peak"`
	P90         float64 `json:"p90"`
	SevereCount int     `json:"severe_count"`
	Trend       Trend   `json:"trend"`
}

// OverallIndices extracts the overall index of each result, preserving order.
func OverallIndices(results []Result) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Overall
	}
	return out
}

// TrendOf compares the mean of the last 10 indices with the mean of the 10
// before them. Stress falling by more than 5 points is improving, rising by
// more than 5 is declining, anything else is stable. With ten or fewer
// indices there is no prior window and the trend is stable.
func TrendOf(indices []float64) Trend {
	n := len(indices)
	recentStart := max(0, n-trendWindow)
	priorStart := max(0, recentStart-trendWindow)

	recent := indices[recentStart:]
	prior := indices[priorStart:recentStart]
	if len(recent) == 0 || len(prior) == 0 {
		return TrendStable
	}

	recentMean, err := stats.Mean(recent)
	if err != nil {
		return TrendStable
	}
	priorMean, err := stats.Mean(prior)
	if err != nil {
		return TrendStable
	}

	switch delta := recentMean - priorMean; {
	case delta < -trendDeadZone:
		return TrendImproving
	case delta > trendDeadZone:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Summarize computes mean, peak, 90th percentile, the count of severe-or-worse
// indices and the trend. An empty input yields a zero summary with a stable trend.
func Summarize(indices []float64) HistorySummary {
	summary := HistorySummary{Count: len(indices), Trend: TrendOf(indices)}
	if len(indices) == 0 {
		return summary
	}

	data := stats.Float64Data(indices)
	if mean, err := data.Mean(); err == nil {
		summary.Mean = mean
	}
	if peak, err := data.Max(); err == nil {
		summary.Peak = peak
	}
	if p90, err := data.Percentile(90); err == nil {
		summary.P90 = p90
	}
	for _, v := range indices {
		if Classify(v).AtLeast(SeveritySevere) {
			summary.SevereCount++
		}
	}
	return summary
}
