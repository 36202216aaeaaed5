package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
)

// ErrNotFound is returned when a zone has no stored evaluations.
var ErrNotFound = errors.New("not found")

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Evaluation is a stored stress result for a zone, with the readings it was
// computed from.
type Evaluation struct {
	ID          uuid.UUID        `json:"id"`
	ZoneID      string           `json:"zone_id"`
	EvaluatedAt time.Time        `json:"evaluated_at"`
	Result      stress.Result    `json:"result"`
	Readings    *stress.Snapshot `json:"readings,omitempty"`
}

// NewEvaluation assigns a fresh id to a result computed for zoneID.
func NewEvaluation(zoneID string, readings stress.Snapshot, result stress.Result) Evaluation {
	return Evaluation{
		ID:          uuid.New(),
		ZoneID:      zoneID,
		EvaluatedAt: result.Timestamp.UTC(),
		Result:      result,
		Readings:    &readings,
	}
}

// ZoneSummary describes a zone by its most recent evaluation.
type ZoneSummary struct {
	ZoneID          string          `json:"zone_id"`
	LastEvaluatedAt time.Time       `json:"last_evaluated_at"`
	Overall         float64         `json:"overall"`
	Severity        stress.Severity `json:"severity"`
	Dominant        string          `json:"dominant_stressor"`
	Evaluations     int             `json:"evaluations"`
}

const insertEvaluationSQL = `
    INSERT INTO stressindex.evaluations (
        id, zone_id, evaluated_at, stage, overall, severity, dominant,
        light, vpd, nutrient, thermal, water, stage_fallback, result, readings
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
`

// InsertEvaluation stores a single evaluation.
func (s *Store) InsertEvaluation(ctx context.Context, e Evaluation) error {
	args, err := evaluationArgs(e)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, insertEvaluationSQL, args...); err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func evaluationArgs(e Evaluation) ([]any, error) {
	result, err := json.Marshal(e.Result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var readings []byte
	if e.Readings != nil {
		if readings, err = json.Marshal(e.Readings); err != nil {
			return nil, fmt.Errorf("encode readings: %w", err)
		}
	}
	scores := e.Result.Categories.Scores()
	return []any{
		e.ID,
		e.ZoneID,
		e.EvaluatedAt,
		e.Result.Stage.String(),
		e.Result.Overall,
		string(e.Result.Severity),
		e.Result.Dominant.String(),
		scores[stress.CategoryLight],
		scores[stress.CategoryVPD],
		scores[stress.CategoryNutrient],
		scores[stress.CategoryThermal],
		scores[stress.CategoryWater],
		e.Result.StageFallback,
		result,
		readings,
	}, nil
}

// FetchEvaluations returns a zone's evaluations newest first.
func (s *Store) FetchEvaluations(ctx context.Context, q ResultQuery) ([]Evaluation, error) {
	sql, args := q.build()
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evaluations := make([]Evaluation, 0)
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

const latestEvaluationSQL = `
    SELECT id, zone_id, evaluated_at, result, readings
    FROM stressindex.evaluations
    WHERE zone_id = $1
    ORDER BY evaluated_at DESC
    LIMIT 1
`

// LatestEvaluation returns the newest evaluation for a zone, or ErrNotFound.
func (s *Store) LatestEvaluation(ctx context.Context, zoneID string) (Evaluation, error) {
	e, err := scanEvaluation(s.pool.QueryRow(ctx, latestEvaluationSQL, zoneID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	return e, err
}

const listZonesSQL = `
    SELECT DISTINCT ON (e.zone_id)
        e.zone_id, e.evaluated_at, e.overall, e.severity, e.dominant, c.total
    FROM stressindex.evaluations e
    JOIN (
        SELECT zone_id, COUNT(*) AS total
        FROM stressindex.evaluations
        GROUP BY zone_id
    ) c ON c.zone_id = e.zone_id
    ORDER BY e.zone_id, e.evaluated_at DESC
`

// ListZones returns every zone with stored evaluations and its latest index.
func (s *Store) ListZones(ctx context.Context) ([]ZoneSummary, error) {
	rows, err := s.pool.Query(ctx, listZonesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zones := make([]ZoneSummary, 0)
	for rows.Next() {
		var z ZoneSummary
		var severity string
		if err := rows.Scan(&z.ZoneID, &z.LastEvaluatedAt, &z.Overall, &severity, &z.Dominant, &z.Evaluations); err != nil {
			return nil, err
		}
		z.Severity = stress.Severity(severity)
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

const recentResultsSQL = `
    SELECT result FROM (
        SELECT result, evaluated_at
        FROM stressindex.evaluations
        WHERE zone_id = $1
        ORDER BY evaluated_at DESC
        LIMIT $2
    ) recent
    ORDER BY evaluated_at ASC
`

// RecentResults returns up to n of the zone's latest results in chronological
// order, ready for trend computation.
func (s *Store) RecentResults(ctx context.Context, zoneID string, n int) ([]stress.Result, error) {
	rows, err := s.pool.Query(ctx, recentResultsSQL, zoneID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]stress.Result, 0, n)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r stress.Result
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanEvaluation(row pgx.Row) (Evaluation, error) {
	var e Evaluation
	var resultJSON, readingsJSON []byte
	if err := row.Scan(&e.ID, &e.ZoneID, &e.EvaluatedAt, &resultJSON, &readingsJSON); err != nil {
		return Evaluation{}, err
	}
	if err := json.Unmarshal(resultJSON, &e.Result); err != nil {
		return Evaluation{}, fmt.Errorf("decode result: %w", err)
	}
	if len(readingsJSON) > 0 {
		var snap stress.Snapshot
		if err := json.Unmarshal(readingsJSON, &snap); err != nil {
			return Evaluation{}, fmt.Errorf("decode readings: %w", err)
		}
		e.Readings = &snap
	}
	return e, nil
}
