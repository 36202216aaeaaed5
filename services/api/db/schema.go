package db

import (
	"context"
	"fmt"
)

type migration struct {
	Name string
	SQL  string
}

var migrations = []migration{
	{
		Name: "001_create_schema",
		SQL:  `CREATE SCHEMA IF NOT EXISTS stressindex`,
	},
	{
		Name: "002_create_evaluations",
		SQL: `
    CREATE TABLE IF NOT EXISTS stressindex.evaluations (
        id             uuid PRIMARY KEY,
        zone_id        text NOT NULL,
        evaluated_at   timestamptz NOT NULL,
        stage          text NOT NULL,
        overall        double precision NOT NULL,
        severity       text NOT NULL,
        dominant       text NOT NULL,
        light          double precision NOT NULL,
        vpd            double precision NOT NULL,
        nutrient       double precision NOT NULL,
        thermal        double precision NOT NULL,
        water          double precision NOT NULL,
        stage_fallback boolean NOT NULL DEFAULT false,
        result         jsonb NOT NULL,
        readings       jsonb,
        created_at     timestamptz NOT NULL DEFAULT NOW(),
        UNIQUE (zone_id, evaluated_at)
    )`,
	},
	{
		Name: "003_index_zone_time",
		SQL: `CREATE INDEX IF NOT EXISTS evaluations_zone_time_idx
    ON stressindex.evaluations (zone_id, evaluated_at DESC)`,
	},
}

const createMigrationsSQL = `
    CREATE TABLE IF NOT EXISTS stressindex.migrations (
        name        text PRIMARY KEY,
        executed_at timestamptz NOT NULL DEFAULT NOW()
    )
`

// EnsureSchema creates the stressindex schema and applies each migration that
// has not run yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, migrations[0].SQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.pool.Exec(ctx, createMigrationsSQL); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	for _, m := range migrations {
		var applied bool
		if err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM stressindex.migrations WHERE name = $1)`, m.Name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", m.Name, err)
		}
		if applied {
			continue
		}

		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("run migration %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO stressindex.migrations (name) VALUES ($1)`, m.Name); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record migration %s: %w", m.Name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %s: %w", m.Name, err)
		}
	}
	return nil
}
