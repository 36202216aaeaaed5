package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

// FetchLastEvaluations loads the most recent evaluation time per zone.
func FetchLastEvaluations(ctx context.Context, pool *pgxpool.Pool, zoneIDs []string) (map[string]time.Time, error) {
	result := make(map[string]time.Time, len(zoneIDs))
	if len(zoneIDs) == 0 {
		return result, nil
	}

	rows, err := pool.Query(ctx, `
SELECT zone_id, MAX(evaluated_at)
FROM stressindex.evaluations
WHERE zone_id = ANY($1)
GROUP BY zone_id`, zoneIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var zoneID string
		var ts time.Time
		if err := rows.Scan(&zoneID, &ts); err != nil {
			return nil, err
		}
		result[zoneID] = ts
	}

	return result, rows.Err()
}

const insertEvaluationSQL = `INSERT INTO stressindex.evaluations (
    id, zone_id, evaluated_at, stage, overall, severity, dominant,
    light, vpd, nutrient, thermal, water, stage_fallback, result, readings
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
ON CONFLICT (zone_id, evaluated_at) DO NOTHING`

// InsertEvaluations writes scored rows in one batch and returns how many were
// new. Rows colliding with an existing (zone_id, evaluated_at) are skipped.
func InsertEvaluations(ctx context.Context, pool *pgxpool.Pool, rows []models.EvaluationRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, r := range rows {
		args, err := rowArgs(r)
		if err != nil {
			return 0, err
		}
		batch.Queue(insertEvaluationSQL, args...)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	var inserted int64
	for _, r := range rows {
		tag, err := res.Exec()
		if err != nil {
			return inserted, fmt.Errorf("insert evaluation for zone %s: %w", r.ZoneID, err)
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

func rowArgs(r models.EvaluationRow) ([]any, error) {
	result, err := json.Marshal(r.Result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	readings, err := json.Marshal(r.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode readings: %w", err)
	}
	scores := r.Result.Categories.Scores()
	return []any{
		r.ID,
		r.ZoneID,
		r.TS,
		r.Result.Stage.String(),
		r.Result.Overall,
		string(r.Result.Severity),
		r.Result.Dominant.String(),
		scores[stress.CategoryLight],
		scores[stress.CategoryVPD],
		scores[stress.CategoryNutrient],
		scores[stress.CategoryThermal],
		scores[stress.CategoryWater],
		r.Result.StageFallback,
		result,
		readings,
	}, nil
}
