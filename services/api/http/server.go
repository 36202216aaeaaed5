package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blakelange123/vibelux-stressindex/internal/stress"
	"github.com/blakelange123/vibelux-stressindex/services/api/config"
	"github.com/blakelange123/vibelux-stressindex/services/api/db"
	"github.com/blakelange123/vibelux-stressindex/services/api/observability"
)

// Store is the persistence the handlers need; *db.Store satisfies it.
type Store interface {
	InsertEvaluation(ctx context.Context, e db.Evaluation) error
	FetchEvaluations(ctx context.Context, q db.ResultQuery) ([]db.Evaluation, error)
	LatestEvaluation(ctx context.Context, zoneID string) (db.Evaluation, error)
	ListZones(ctx context.Context) ([]db.ZoneSummary, error)
	RecentResults(ctx context.Context, zoneID string, n int) ([]stress.Result, error)
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg     config.Config
	store   Store
	logger  *zap.Logger
	metrics *observability.Metrics
	engine  *gin.Engine
	now     func() time.Time
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, store Store, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	metrics := observability.NewMetrics()
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(metrics.Middleware())
	engine.Use(corsMiddleware())

	server := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		metrics: metrics,
		engine:  engine,
		now:     func() time.Time { return time.Now().UTC() },
	}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	s.registerV1Routes()
}

// authMiddleware picks JWT validation when a signing secret is configured,
// otherwise a static bearer token, otherwise nothing.
func (s *Server) authMiddleware() gin.HandlerFunc {
	switch {
	case s.cfg.JWTSecret != "":
		return jwtAuthMiddleware(s.cfg.JWTSecret)
	case s.cfg.BearerToken != "":
		return bearerAuthMiddleware(s.cfg.BearerToken)
	default:
		return nil
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
