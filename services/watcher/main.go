package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/blakelange123/vibelux-stressindex/internal/logging"
	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/config"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/db"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/feed"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/publish"
	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("watcher failed", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+30*time.Second)
	defer cancel()

	client := &http.Client{Timeout: cfg.RequestTimeout}
	retrievalTS := time.Now().UTC().Truncate(time.Second)

	payload, err := feed.FetchSnapshots(ctx, client, cfg.SnapshotURL)
	if err != nil {
		return err
	}
	logger.Info("fetched zone snapshots",
		zap.Int("zones", len(payload.Zones)),
		zap.String("facility", payload.Facility),
	)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	candidates := utils.BuildCandidates(payload.Zones, retrievalTS)
	lastMap, err := db.FetchLastEvaluations(ctx, pool, utils.ZoneIDs(candidates))
	if err != nil {
		return err
	}

	pending := utils.FilterNewSnapshots(candidates, lastMap, cfg.MinInterval)
	if len(pending) == 0 {
		logger.Info("no new snapshots to evaluate", zap.Time("retrieval", retrievalTS))
		return nil
	}

	rows := utils.EvaluateCandidates(pending)
	for _, zone := range utils.FallbackZones(rows) {
		logger.Warn("unknown growth stage, scored as vegetative", zap.String("zone_id", zone))
	}
	alerts := utils.Alerts(rows, stress.SeveritySevere)

	logger.Info("prepared evaluations",
		zap.Int("count", len(rows)),
		zap.Int("alerts", len(alerts)),
		zap.Bool("dry_run", cfg.DryRun),
	)

	if cfg.DryRun {
		for _, r := range rows {
			logger.Info("dry-run: would insert", zap.String("evaluation", utils.Describe(r)))
		}
		return nil
	}

	inserted, err := db.InsertEvaluations(ctx, pool, rows)
	if err != nil {
		return err
	}
	logger.Info("inserted evaluations", zap.Int64("inserted", inserted))

	if len(cfg.KafkaBrokers) > 0 {
		if err := publishResults(ctx, cfg, rows); err != nil {
			return err
		}
		logger.Info("published results", zap.String("topic", cfg.ResultsTopic), zap.Int("count", len(rows)))
	}

	if cfg.MQTTBrokerURL != "" && len(alerts) > 0 {
		if err := publishAlerts(cfg, alerts); err != nil {
			return err
		}
		logger.Info("published alerts", zap.String("topic", cfg.AlertTopic), zap.Int("count", len(alerts)))
	}

	return nil
}

func publishResults(ctx context.Context, cfg config.Config, rows []models.EvaluationRow) error {
	publisher, err := publish.NewResultPublisher(cfg.KafkaBrokers, cfg.ResultsTopic)
	if err != nil {
		return err
	}
	defer publisher.Close()
	return publisher.Publish(ctx, rows)
}

func publishAlerts(cfg config.Config, alerts []models.EvaluationRow) error {
	publisher, err := publish.NewAlertPublisher(cfg.MQTTBrokerURL, cfg.MQTTClientID, cfg.AlertTopic, cfg.RequestTimeout)
	if err != nil {
		return err
	}
	defer publisher.Close()
	return publisher.Publish(alerts)
}
