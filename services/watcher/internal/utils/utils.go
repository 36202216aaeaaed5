package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

// BuildCandidates normalizes feed zones into evaluation candidates. Zone ids
// are trimmed, zones without an id are dropped, missing timestamps default to
// retrievalTS, and a zone listed more than once keeps its newest snapshot.
func BuildCandidates(zones []models.ZoneSnapshot, retrievalTS time.Time) []models.SnapshotCandidate {
	byZone := make(map[string]models.SnapshotCandidate, len(zones))
	for _, z := range zones {
		id := strings.TrimSpace(z.ZoneID)
		if id == "" {
			continue
		}
		ts := retrievalTS
		if z.Timestamp != nil && !z.Timestamp.IsZero() {
			ts = *z.Timestamp
		}
		ts = ts.UTC().Truncate(time.Second)

		if prev, ok := byZone[id]; ok && !ts.After(prev.TS) {
			continue
		}
		byZone[id] = models.SnapshotCandidate{
			ZoneID: id,
			TS:     ts,
			Snapshot: stress.Snapshot{
				Environment: z.Environment,
				Nutrients:   z.Nutrients,
				Plant:       z.Plant,
			},
		}
	}

	out := make([]models.SnapshotCandidate, 0, len(byZone))
	for _, c := range byZone {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZoneID < out[j].ZoneID })
	return out
}

// ZoneIDs extracts zone identifiers from candidates.
func ZoneIDs(candidates []models.SnapshotCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ZoneID)
	}
	return ids
}

// FilterNewSnapshots selects candidates at least minInterval newer than the
// zone's last stored evaluation.
func FilterNewSnapshots(
	candidates []models.SnapshotCandidate,
	last map[string]time.Time,
	minInterval time.Duration,
) []models.SnapshotCandidate {
	out := make([]models.SnapshotCandidate, 0, len(candidates))
	for _, cand := range candidates {
		prev, ok := last[cand.ZoneID]
		if !ok || (cand.TS.After(prev) && cand.TS.Sub(prev) >= minInterval) {
			out = append(out, cand)
		}
	}
	return out
}

// EvaluateCandidates scores each candidate at its snapshot time.
func EvaluateCandidates(candidates []models.SnapshotCandidate) []models.EvaluationRow {
	rows := make([]models.EvaluationRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, models.EvaluationRow{
			ID:       uuid.New(),
			ZoneID:   c.ZoneID,
			TS:       c.TS,
			Snapshot: c.Snapshot,
			Result:   stress.Evaluate(c.Snapshot, c.TS),
		})
	}
	return rows
}

// Alerts keeps the rows whose severity is at least min.
func Alerts(rows []models.EvaluationRow, min stress.Severity) []models.EvaluationRow {
	out := make([]models.EvaluationRow, 0)
	for _, r := range rows {
		if r.Result.Severity.AtLeast(min) {
			out = append(out, r)
		}
	}
	return out
}

// FallbackZones lists zones whose stage was unknown and scored as vegetative.
func FallbackZones(rows []models.EvaluationRow) []string {
	var out []string
	for _, r := range rows {
		if r.Result.StageFallback {
			out = append(out, r.ZoneID)
		}
	}
	return out
}

// Describe prints a row for dry-run logging.
func Describe(r models.EvaluationRow) string {
	return fmt.Sprintf("zone=%s ts=%s overall=%.2f severity=%s dominant=%s",
		r.ZoneID, r.TS.Format(time.RFC3339), r.Result.Overall, r.Result.Severity, r.Result.Dominant)
}
