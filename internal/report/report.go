// Package report fetches a user's rows and runs them through the progress
// engine. It is shared by the HTTP API and the progress-report CLI.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
)

// Source is the query layer the reporter reads from. *store.Store satisfies it.
type Source interface {
	FetchGoalProfileCandidates(ctx context.Context, userID int, today time.Time) (progress.GoalCandidates, error)
	FetchDailyLogs(ctx context.Context, userID int, start, end time.Time) ([]progress.LogEntry, error)
	FetchWeightObservations(ctx context.Context, userID int, start, end time.Time) ([]progress.RawWeightObservation, error)
}

type Reporter struct {
	src      Source
	analyzer *progress.Analyzer
}

func NewReporter(src Source, analyzer *progress.Analyzer) *Reporter {
	return &Reporter{src: src, analyzer: analyzer}
}

// GoalProfile resolves the user's goal profile as of today.
func (r *Reporter) GoalProfile(ctx context.Context, userID int, today time.Time) (progress.GoalProfile, error) {
	candidates, err := r.src.FetchGoalProfileCandidates(ctx, userID, today)
	if err != nil {
		return progress.GoalProfile{}, err
	}
	return r.analyzer.ResolveGoalProfile(candidates, today)
}

// Trajectory projects the user's weight from the goal start date to the goal
// date. Logs are read up to today; weight observations cover the whole plan.
func (r *Reporter) Trajectory(ctx context.Context, userID int, today time.Time) (progress.Trajectory, progress.GoalProfile, error) {
	p, err := r.GoalProfile(ctx, userID, today)
	if err != nil {
		return progress.Trajectory{}, p, err
	}

	totalDays, err := progress.PlannedDays(p)
	if err != nil {
		// ProjectTrajectory logs the refusal and returns the same error.
		t, err := r.analyzer.ProjectTrajectory(p, nil, nil, today)
		return t, p, err
	}
	goalDate := progress.AddDays(progress.Day(p.StartDate), totalDays)

	var entries []progress.LogEntry
	if progress.DaysBetween(p.StartDate, today) >= 0 {
		entries, err = r.src.FetchDailyLogs(ctx, userID, p.StartDate, today)
		if err != nil {
			return progress.Trajectory{}, p, err
		}
	}
	observations, err := r.src.FetchWeightObservations(ctx, userID, p.StartDate, goalDate)
	if err != nil {
		return progress.Trajectory{}, p, err
	}

	agg := r.analyzer.Aggregate(entries, observations)
	t, err := r.analyzer.ProjectTrajectory(p, agg.Logs, agg.Observations, today)
	return t, p, err
}

// Consistency scores the user's logging over [start, end]. The goal profile
// supplies the protein target, so a profile without weights cannot be scored.
func (r *Reporter) Consistency(ctx context.Context, userID int, start, end time.Time) (progress.ConsistencyResult, error) {
	if progress.DaysBetween(start, end) < 0 {
		return progress.ConsistencyResult{}, fmt.Errorf("range end %s is before start %s", progress.DayKey(end), progress.DayKey(start))
	}
	if n := progress.DaysBetween(start, end) + 1; n > progress.MaxConsistencyDays {
		return progress.ConsistencyResult{}, fmt.Errorf("range of %d days exceeds the %d day limit", n, progress.MaxConsistencyDays)
	}
	p, err := r.GoalProfile(ctx, userID, end)
	if err != nil {
		return progress.ConsistencyResult{}, err
	}

	entries, err := r.src.FetchDailyLogs(ctx, userID, start, end)
	if err != nil {
		return progress.ConsistencyResult{}, err
	}
	agg := r.analyzer.Aggregate(entries, nil)
	return r.analyzer.ScoreConsistency(p, agg.Logs, start, end), nil
}
