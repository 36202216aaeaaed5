package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/api/db"
)

type evaluateRequest struct {
	ZoneID      string                      `json:"zone_id"`
	Timestamp   *time.Time                  `json:"timestamp"`
	Environment stress.EnvironmentalReading `json:"environment"`
	Nutrients   stress.NutrientReading      `json:"nutrients"`
	Plant       stress.PlantState           `json:"plant"`
	Persist     bool                        `json:"persist"`
}

func (r evaluateRequest) snapshot() stress.Snapshot {
	return stress.Snapshot{Environment: r.Environment, Nutrients: r.Nutrients, Plant: r.Plant}
}

// handleV1Evaluate scores a snapshot and optionally stores it for the zone
// POST /api/v1/stress/evaluate
func (s *Server) handleV1Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	req.ZoneID = strings.TrimSpace(req.ZoneID)
	if req.Persist && req.ZoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zone_id is required when persist is set"})
		return
	}

	at := s.now()
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}

	snap := req.snapshot()
	result := stress.Evaluate(snap, at)
	if result.StageFallback {
		s.logger.Warn("unknown growth stage, scored as vegetative", zap.String("zone_id", req.ZoneID))
	}

	if !req.Persist {
		s.metrics.Evaluation(string(result.Severity), result.Overall, false, result.StageFallback)
		c.JSON(http.StatusOK, gin.H{"data": result})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	evaluation := db.NewEvaluation(req.ZoneID, snap, result)
	if err := s.store.InsertEvaluation(ctx, evaluation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.metrics.Evaluation(string(result.Severity), result.Overall, true, result.StageFallback)
	s.logger.Info("stress evaluated",
		zap.String("zone_id", req.ZoneID),
		zap.Float64("overall", result.Overall),
		zap.String("severity", string(result.Severity)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"data": result,
		"meta": gin.H{
			"id":      evaluation.ID,
			"zone_id": evaluation.ZoneID,
		},
	})
}

// handleV1Stages returns the per-stage reference tables
// GET /api/v1/stress/stages
func (s *Server) handleV1Stages(c *gin.Context) {
	profiles := stress.Profiles()
	c.JSON(http.StatusOK, gin.H{
		"data": profiles,
		"meta": gin.H{
			"count":             len(profiles),
			"nutrient_maximums": stress.NutrientMaximums(),
		},
	})
}

// handleV1ListZones returns zones with their latest index
// GET /api/v1/stress/zones
func (s *Server) handleV1ListZones(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	zones, err := s.store.ListZones(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": zones,
		"meta": gin.H{
			"count": len(zones),
		},
	})
}

// handleV1ZoneResults returns stored evaluations for a zone, newest first
// GET /api/v1/stress/zones/:zone_id/results
func (s *Server) handleV1ZoneResults(c *gin.Context) {
	zoneID := strings.TrimSpace(c.Param("zone_id"))
	if zoneID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zone_id is required"})
		return
	}

	limit := s.cfg.DefaultLimit
	if limitStr := c.Query("last_n"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_n"})
			return
		}
		limit = parsed
	}

	var since, until *time.Time
	if startStr := c.Query("start"); startStr != "" {
		t, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start timestamp"})
			return
		}
		tt := t.UTC()
		since = &tt
	}
	if endStr := c.Query("end"); endStr != "" {
		t, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end timestamp"})
			return
		}
		tt := t.UTC()
		until = &tt
	}
	if since != nil && until != nil && until.Before(*since) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end is before start"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	evaluations, err := s.store.FetchEvaluations(ctx, db.ResultQuery{
		ZoneID: zoneID,
		Limit:  limit,
		Since:  since,
		Until:  until,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": evaluations,
		"meta": gin.H{
			"zone_id": zoneID,
			"count":   len(evaluations),
			"limit":   limit,
		},
	})
}

// handleV1ZoneLatest returns the newest evaluation for a zone
// GET /api/v1/stress/zones/:zone_id/latest
func (s *Server) handleV1ZoneLatest(c *gin.Context) {
	zoneID := strings.TrimSpace(c.Param("zone_id"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	evaluation, err := s.store.LatestEvaluation(ctx, zoneID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no evaluations for zone"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": evaluation})
}

// handleV1ZoneSummary summarizes a zone's recent history and trend
// GET /api/v1/stress/zones/:zone_id/summary
func (s *Server) handleV1ZoneSummary(c *gin.Context) {
	zoneID := strings.TrimSpace(c.Param("zone_id"))

	window := s.cfg.TrendWindow
	if windowStr := c.Query("window"); windowStr != "" {
		parsed, err := strconv.Atoi(windowStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window"})
			return
		}
		window = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results, err := s.store.RecentResults(ctx, zoneID, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no evaluations for zone"})
		return
	}

	summary := stress.Summarize(stress.OverallIndices(results))
	latest := results[len(results)-1]
	c.JSON(http.StatusOK, gin.H{
		"data": summary,
		"meta": gin.H{
			"zone_id":        zoneID,
			"window":         window,
			"latest_overall": latest.Overall,
			"latest_at":      latest.Timestamp.Format(time.RFC3339),
		},
	})
}
