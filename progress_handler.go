package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
	"github.com/robertojose17/MacroGoal-sub000/internal/report"
)

// getGoalProfile returns the resolved goal profile.
// GET /api/progress/goal-profile?today=YYYY-MM-DD (today defaults to the server date).
func (h *Handler) getGoalProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	today, ok := h.todayParam(c)
	if !ok {
		return
	}

	p, err := h.reporter.GoalProfile(c, userID, today)
	if err != nil {
		h.engineError(c, "goal_profile", err)
		return
	}
	h.metrics.CounterEngineOutcomes.WithLabelValues("goal_profile", "ok").Inc()
	c.JSON(http.StatusOK, report.NewGoalProfileView(p))
}

// getTrajectory returns the planned and projected weight series from the goal
// start date to the goal date.
// GET /api/progress/trajectory?today=YYYY-MM-DD (today defaults to the server date).
func (h *Handler) getTrajectory(c *gin.Context) {
	userID := c.GetInt("user_id")
	today, ok := h.todayParam(c)
	if !ok {
		return
	}

	h.serveCached(c, "trajectory", userID, progress.DayKey(today), func() (any, error) {
		t, p, err := h.reporter.Trajectory(c, userID, today)
		if err != nil {
			return nil, err
		}
		return report.NewTrajectoryView(p, t), nil
	})
}

// getConsistency returns the consistency score for [start, end].
// GET /api/progress/consistency?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params
// required; the range is capped at MaxConsistencyDays.
func (h *Handler) getConsistency(c *gin.Context) {
	userID := c.GetInt("user_id")
	startParam := c.Query("start")
	endParam := c.Query("end")

	if startParam == "" || endParam == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	start, err := progress.ParseDay(startParam)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	end, err := progress.ParseDay(endParam)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}
	if progress.DaysBetween(start, end)+1 > progress.MaxConsistencyDays {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("range must not exceed %d days", progress.MaxConsistencyDays))
		return
	}

	h.serveCached(c, "consistency", userID, startParam+":"+endParam, func() (any, error) {
		r, err := h.reporter.Consistency(c, userID, start, end)
		if err != nil {
			return nil, err
		}
		return report.NewConsistencyView(start, end, r), nil
	})
}

/* ─── Helpers ────────────────────────────────────────────────────────── */

// todayParam reads the optional today query param. It writes a 400 and
// returns ok=false when the param is malformed.
func (h *Handler) todayParam(c *gin.Context) (today time.Time, ok bool) {
	raw := c.Query("today")
	if raw == "" {
		return progress.Day(h.now().UTC()), true
	}
	today, err := progress.ParseDay(raw)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid today, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return today, true
}

// serveCached answers from the result cache when the user's data version is
// unchanged, otherwise computes, caches and writes the response. Domain
// errors are never cached. When the data version cannot be read the request
// is served uncached.
func (h *Handler) serveCached(c *gin.Context, endpoint string, userID int, params string, compute func() (any, error)) {
	var key []byte
	version, err := h.store.DataVersion(c, userID)
	if err != nil {
		h.log.WithError(err).WithField("endpoint", endpoint).Warn("data version unavailable, skipping cache")
	} else {
		key = []byte(fmt.Sprintf("%s:%d:%s:%s", endpoint, userID, params, version.Key()))
		if b, err := h.cache.Get(key); err == nil {
			h.metrics.CounterCacheLookups.WithLabelValues(endpoint, "hit").Inc()
			c.Data(http.StatusOK, "application/json; charset=utf-8", b)
			return
		}
		h.metrics.CounterCacheLookups.WithLabelValues(endpoint, "miss").Inc()
	}

	resp, err := compute()
	if err != nil {
		h.engineError(c, endpoint, err)
		return
	}
	b, err := json.Marshal(resp)
	if err != nil {
		h.log.WithError(err).WithField("endpoint", endpoint).Error("failed to encode response")
		apiError(c, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if key != nil {
		if err := h.cache.Set(key, b, h.cacheTTL); err != nil {
			h.log.WithError(err).WithField("endpoint", endpoint).Warn("failed to cache response")
		}
	}

	h.metrics.CounterEngineOutcomes.WithLabelValues(endpoint, "ok").Inc()
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

// engineError maps domain errors to 200 responses the client renders as a
// "set your goal" or "projection disabled" state. Anything else is a 500.
func (h *Handler) engineError(c *gin.Context, endpoint string, err error) {
	var insufficient *progress.InsufficientProfileDataError
	switch {
	case errors.As(err, &insufficient):
		h.metrics.CounterEngineOutcomes.WithLabelValues(endpoint, "insufficient_profile_data").Inc()
		c.JSON(http.StatusOK, gin.H{"error": "insufficient_profile_data", "missing": insufficient.Missing})
	case errors.Is(err, progress.ErrEngine):
		h.metrics.CounterEngineOutcomes.WithLabelValues(endpoint, "projection_disabled").Inc()
		c.JSON(http.StatusOK, gin.H{"error": "projection_disabled", "message": err.Error()})
	default:
		h.metrics.CounterEngineOutcomes.WithLabelValues(endpoint, "error").Inc()
		h.log.WithError(err).WithField("endpoint", endpoint).Error("failed to compute progress")
		apiError(c, http.StatusInternalServerError, "failed to load progress data")
	}
}
