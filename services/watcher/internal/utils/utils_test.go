package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

var retrieval = time.Date(2024, 6, 1, 12, 0, 30, 500, time.UTC)

func ts(hour, min int) *time.Time {
	t := time.Date(2024, 6, 1, hour, min, 0, 0, time.UTC)
	return &t
}

func TestBuildCandidates(t *testing.T) {
	zones := []models.ZoneSnapshot{
		{ZoneID: " b2 ", Timestamp: ts(11, 0)},
		{ZoneID: "a1"},
		{ZoneID: ""},
		{ZoneID: "b2", Timestamp: ts(11, 30), Plant: stress.PlantState{Stage: stress.Ripening}},
		{ZoneID: "b2", Timestamp: ts(10, 0)},
	}

	got := BuildCandidates(zones, retrieval)
	require.Len(t, got, 2)

	assert.Equal(t, "a1", got[0].ZoneID)
	assert.Equal(t, retrieval.Truncate(time.Second), got[0].TS)

	assert.Equal(t, "b2", got[1].ZoneID)
	assert.Equal(t, *ts(11, 30), got[1].TS)
	assert.Equal(t, stress.Ripening, got[1].Snapshot.Plant.Stage)

	assert.Equal(t, []string{"a1", "b2"}, ZoneIDs(got))
}

func TestFilterNewSnapshots(t *testing.T) {
	candidates := []models.SnapshotCandidate{
		{ZoneID: "new", TS: *ts(12, 0)},
		{ZoneID: "due", TS: *ts(12, 0)},
		{ZoneID: "recent", TS: *ts(12, 0)},
		{ZoneID: "same", TS: *ts(12, 0)},
	}
	last := map[string]time.Time{
		"due":    *ts(11, 55),
		"recent": *ts(11, 58),
		"same":   *ts(12, 0),
	}

	got := FilterNewSnapshots(candidates, last, 5*time.Minute)
	assert.Equal(t, []string{"new", "due"}, ZoneIDs(got))

	got = FilterNewSnapshots(candidates, last, 0)
	assert.Equal(t, []string{"new", "due", "recent"}, ZoneIDs(got))
}

func TestEvaluateCandidatesAndAlerts(t *testing.T) {
	calm := stress.Snapshot{
		Environment: stress.EnvironmentalReading{
			PPFD: 450, DLI: 30, PhotoperiodHours: 18, VPD: 1.0, AirTemp: 25, LeafTemp: 23,
			Spectrum: stress.Spectrum{Red: 60, Blue: 20, FarRed: 10, UV: 5},
		},
		Nutrients: stress.NutrientReading{EC: 1.6, PH: 6.0, NutrientLevels: stress.NutrientLevels{
			Nitrogen: 225, Phosphorus: 70, Potassium: 250, Calcium: 185, Magnesium: 70, Sulfur: 100,
		}},
		Plant: stress.PlantState{Stage: stress.Vegetative, StomatalConductance: 300, SapFlow: 50, LeafWaterPotential: -0.5},
	}
	// Zero readings leave every category far outside its band.
	starved := stress.Snapshot{}

	rows := EvaluateCandidates([]models.SnapshotCandidate{
		{ZoneID: "calm", TS: *ts(12, 0), Snapshot: calm},
		{ZoneID: "starved", TS: *ts(12, 0), Snapshot: starved},
	})
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0].ID, rows[1].ID)
	assert.Equal(t, *ts(12, 0), rows[0].Result.Timestamp)
	assert.Equal(t, stress.SeverityOptimal, rows[0].Result.Severity)
	assert.True(t, rows[1].Result.Severity.AtLeast(stress.SeveritySevere))

	alerts := Alerts(rows, stress.SeveritySevere)
	require.Len(t, alerts, 1)
	assert.Equal(t, "starved", alerts[0].ZoneID)

	assert.Equal(t, []string{"starved"}, FallbackZones(rows))
	assert.True(t, strings.HasPrefix(Describe(rows[0]), "zone=calm ts=2024-06-01T12:00:00Z"))
}
