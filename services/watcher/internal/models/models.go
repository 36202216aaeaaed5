package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
)

// SnapshotFeed models the JSON payload returned by the facility snapshot feed.
type SnapshotFeed struct {
	Facility    string         `json:"facility"`
	GeneratedAt *time.Time     `json:"generated_at"`
	Zones       []ZoneSnapshot `json:"zones"`
}

// ZoneSnapshot is one zone's readings as published by the feed.
type ZoneSnapshot struct {
	ZoneID      string                      `json:"zone_id"`
	Timestamp   *time.Time                  `json:"timestamp"`
	Environment stress.EnvironmentalReading `json:"environment"`
	Nutrients   stress.NutrientReading      `json:"nutrients"`
	Plant       stress.PlantState           `json:"plant"`
}

// SnapshotCandidate is a normalized zone snapshot ready for evaluation.
type SnapshotCandidate struct {
	ZoneID   string
	TS       time.Time
	Snapshot stress.Snapshot
}

// EvaluationRow is a scored candidate ready for insertion and publishing.
type EvaluationRow struct {
	ID       uuid.UUID
	ZoneID   string
	TS       time.Time
	Snapshot stress.Snapshot
	Result   stress.Result
}
