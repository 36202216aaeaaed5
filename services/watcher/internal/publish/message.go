package publish

import (
	"time"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

// ResultMessage is the Kafka payload for a scored zone snapshot.
type ResultMessage struct {
	ID          string        `json:"id"`
	ZoneID      string        `json:"zone_id"`
	EvaluatedAt time.Time     `json:"evaluated_at"`
	Result      stress.Result `json:"result"`
}

// Alert is the MQTT payload sent for severe and critical results.
type Alert struct {
	ZoneID          string          `json:"zone_id"`
	EvaluatedAt     time.Time       `json:"evaluated_at"`
	Overall         float64         `json:"overall"`
	Severity        stress.Severity `json:"severity"`
	Dominant        stress.Category `json:"dominant_stressor"`
	Recommendations []string        `json:"recommendations"`
}

func newResultMessage(r models.EvaluationRow) ResultMessage {
	return ResultMessage{ID: r.ID.String(), ZoneID: r.ZoneID, EvaluatedAt: r.TS, Result: r.Result}
}

func newAlert(r models.EvaluationRow) Alert {
	return Alert{
		ZoneID:          r.ZoneID,
		EvaluatedAt:     r.TS,
		Overall:         r.Result.Overall,
		Severity:        r.Result.Severity,
		Dominant:        r.Result.Dominant,
		Recommendations: r.Result.Recommendations,
	}
}
