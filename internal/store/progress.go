package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
)

const goalColumns = `id, user_id, is_active, start_date, start_weight, goal_weight, unit,
	weekly_change_rate, daily_calorie_target, daily_protein_target, created_at`

// FetchGoalProfileCandidates loads everything the goal resolver may draw
// from: the active goal, the most recent goal, the account creation date and
// the settings profile. Goals created after today are ignored.
func (s *Store) FetchGoalProfileCandidates(ctx context.Context, userID int, today time.Time) (progress.GoalCandidates, error) {
	args := pgx.NamedArgs{"userID": userID, "today": progress.DayKey(today)}

	active, err := optional[goalRow](queryOne[goalRow](ctx, s,
		`SELECT `+goalColumns+` FROM goals
		 WHERE user_id = @userID AND is_active AND created_at::date <= @today
		 ORDER BY created_at DESC, id DESC LIMIT 1`, args))
	if err != nil {
		return progress.GoalCandidates{}, fmt.Errorf("fetch active goal: %w", err)
	}

	mostRecent, err := optional[goalRow](queryOne[goalRow](ctx, s,
		`SELECT `+goalColumns+` FROM goals
		 WHERE user_id = @userID AND created_at::date <= @today
		 ORDER BY created_at DESC, id DESC LIMIT 1`, args))
	if err != nil {
		return progress.GoalCandidates{}, fmt.Errorf("fetch most recent goal: %w", err)
	}

	var created *time.Time
	err = s.db.QueryRow(ctx, "SELECT created_at FROM users WHERE id = $1", userID).Scan(&created)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return progress.GoalCandidates{}, fmt.Errorf("fetch account creation date: %w", err)
	}

	settings, err := optional[settingsRow](queryOne[settingsRow](ctx, s,
		`SELECT user_id, calorie_budget, protein_target_g, sex, date_of_birth,
		        height_cm, weight_lbs, activity_level, target_weight_lbs
		 FROM calorie_log_user_settings WHERE user_id = @userID`, args))
	if err != nil {
		return progress.GoalCandidates{}, fmt.Errorf("fetch settings: %w", err)
	}

	return progress.GoalCandidates{
		Active:         active.toGoalRow(),
		MostRecent:     mostRecent.toGoalRow(),
		AccountCreated: created,
		Profile:        profileFromSettings(settings, today),
	}, nil
}

// FetchDailyLogs returns the food items logged in [start, end]. Exercise rows
// are excluded: a tracked day is a day with at least one food entry.
func (s *Store) FetchDailyLogs(ctx context.Context, userID int, start, end time.Time) ([]progress.LogEntry, error) {
	rows, err := queryMany[logItemRow](ctx, s,
		`SELECT date, calories, protein_g FROM calorie_log_items
		 WHERE user_id = @userID AND date >= @start AND date <= @end AND type != 'exercise'
		 ORDER BY date ASC, id ASC`,
		pgx.NamedArgs{"userID": userID, "start": progress.DayKey(start), "end": progress.DayKey(end)})
	if err != nil {
		return nil, fmt.Errorf("fetch daily logs: %w", err)
	}

	entries := make([]progress.LogEntry, len(rows))
	for i, r := range rows {
		entries[i] = r.toLogEntry()
	}
	return entries, nil
}

// FetchWeightObservations returns weight entries in [start, end] as stored,
// leaving validation and unit conversion to the aggregator.
func (s *Store) FetchWeightObservations(ctx context.Context, userID int, start, end time.Time) ([]progress.RawWeightObservation, error) {
	rows, err := queryMany[weightRow](ctx, s,
		`SELECT date, weight, unit FROM weight_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC, id ASC`,
		pgx.NamedArgs{"userID": userID, "start": progress.DayKey(start), "end": progress.DayKey(end)})
	if err != nil {
		return nil, fmt.Errorf("fetch weight observations: %w", err)
	}

	out := make([]progress.RawWeightObservation, len(rows))
	for i, r := range rows {
		out[i] = progress.RawWeightObservation{Date: r.Date.Time, Weight: r.Weight, Unit: r.Unit}
	}
	return out, nil
}

// versionedTables are the per-user tables whose rows feed the engine.
var versionedTables = []string{"goals", "calorie_log_items", "weight_log", "calorie_log_user_settings"}

// dataVersionSQL selects the latest updated_at and the total row count across
// versionedTables for @userID.
var dataVersionSQL = func() string {
	latest := make([]string, len(versionedTables))
	counts := make([]string, len(versionedTables))
	for i, t := range versionedTables {
		latest[i] = "(SELECT MAX(updated_at) FROM " + t + " WHERE user_id = @userID)"
		counts[i] = "(SELECT COUNT(*) FROM " + t + " WHERE user_id = @userID)"
	}
	return "SELECT GREATEST(" + strings.Join(latest, ", ") + ") AS last_modified, " +
		strings.Join(counts, " + ") + " AS row_count"
}()

// DataVersion returns the latest modification time and total row count across
// the tables feeding the engine. Row counts catch deletes, which leave no
// updated_at behind.
func (s *Store) DataVersion(ctx context.Context, userID int) (DataVersion, error) {
	v, err := queryOne[DataVersion](ctx, s, dataVersionSQL, pgx.NamedArgs{"userID": userID})
	if err != nil {
		return DataVersion{}, fmt.Errorf("fetch data version: %w", err)
	}
	return v, nil
}

/* ─── Row conversion ──────────────────────────────────────────────────── */

func (r logItemRow) toLogEntry() progress.LogEntry {
	e := progress.LogEntry{Date: r.Date.Time, Calories: float64(r.Calories)}
	if r.ProteinG != nil {
		e.Protein = *r.ProteinG
	}
	return e
}

// toGoalRow converts a scanned goals row into the resolver's input type.
func (g *goalRow) toGoalRow() *progress.GoalRow {
	if g == nil {
		return nil
	}
	out := &progress.GoalRow{
		IsActive:           g.IsActive,
		StartWeight:        g.StartWeight,
		GoalWeight:         g.GoalWeight,
		Unit:               g.Unit,
		WeeklyChangeRate:   g.WeeklyChangeRate,
		DailyCalorieTarget: g.DailyCalorieTarget,
		DailyProteinTarget: g.DailyProteinTarget,
		CreatedAt:          g.CreatedAt,
	}
	if g.StartDate != nil && !g.StartDate.IsZero() {
		start := g.StartDate.Time
		out.StartDate = &start
	}
	return out
}

// profileFromSettings converts a settings row into the resolver's fallback
// profile. Settings weights are pounds. MaintenanceCalories stays nil when the
// body profile is too incomplete for an estimate.
func profileFromSettings(s *settingsRow, today time.Time) *progress.ProfileRow {
	if s == nil {
		return nil
	}
	lb := string(progress.Pounds)
	p := &progress.ProfileRow{
		CurrentWeight: s.WeightLBS,
		TargetWeight:  s.TargetWeightLBS,
		Unit:          &lb,
	}
	if _, tdee, ok := computeTDEE(s, today); ok {
		maintenance := float64(tdee)
		p.MaintenanceCalories = &maintenance
	}
	if s.ProteinTargetG > 0 {
		protein := float64(s.ProteinTargetG)
		p.ProteinTarget = &protein
	}
	return p
}
