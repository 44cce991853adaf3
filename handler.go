package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/coocood/freecache"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
	"github.com/robertojose17/MacroGoal-sub000/internal/report"
	"github.com/robertojose17/MacroGoal-sub000/internal/store"
)

// progressStore is the query layer the handlers need. *store.Store satisfies it.
type progressStore interface {
	report.Source
	DataVersion(ctx context.Context, userID int) (store.DataVersion, error)
	UserByUsername(ctx context.Context, username string) (store.User, error)
	UserIDByToken(ctx context.Context, token string) (int, error)
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	store    progressStore
	reporter *report.Reporter
	cache    *freecache.Cache
	cacheTTL int // seconds
	metrics  *metricsManager
	log      logrus.FieldLogger
	now      func() time.Time // overridable for tests
}

func newHandler(st progressStore, analyzer *progress.Analyzer, cache *freecache.Cache, cacheTTL int, metrics *metricsManager, logger logrus.FieldLogger) *Handler {
	return &Handler{
		store:    st,
		reporter: report.NewReporter(st, analyzer),
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		log:      logger,
		now:      time.Now,
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine, metricsHandler http.Handler) {
	router.Use(h.requestLogger())

	// Public routes
	router.GET("/healthz", h.healthz)
	router.GET("/metrics", gin.WrapH(metricsHandler))
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	h.registerProgressRoutes(api)
}

// registerProgressRoutes is split out so tests can mount the progress routes
// behind a stub auth middleware.
func (h *Handler) registerProgressRoutes(api *gin.RouterGroup) {
	api.GET("/progress/goal-profile", h.getGoalProfile)
	api.GET("/progress/trajectory", h.getTrajectory)
	api.GET("/progress/consistency", h.getConsistency)
}

// requestLogger logs each request through logrus and records its metrics.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		h.metrics.CounterRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		h.metrics.HistRequestDuration.WithLabelValues(route).Observe(latency.Seconds())

		entry := h.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": latency.String(),
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("request failed")
		} else {
			entry.Debug("request served")
		}
	}
}

// healthz reports whether the database is reachable.
// GET /healthz (public).
func (h *Handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.log.WithError(err).Warn("health check: database unreachable")
		apiError(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
