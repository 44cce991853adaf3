package report

import (
	"time"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
	"github.com/robertojose17/MacroGoal-sub000/internal/store"
)

/* ─── JSON views ─────────────────────────────────────────────────────── */

// The views below are what the HTTP API and `progress-report --json` print.
// Dates render as YYYY-MM-DD.

// GoalProfileView is the body of GET /api/progress/goal-profile and is
// embedded in TrajectoryView.
type GoalProfileView struct {
	StartDate          store.DateOnly `json:"start_date"`
	StartWeight        float64        `json:"start_weight"`
	GoalWeight         float64        `json:"goal_weight"`
	WeeklyChangeRate   float64        `json:"weekly_change_rate"`
	DailyCalorieTarget float64        `json:"daily_calorie_target"`
	DailyProteinTarget float64        `json:"daily_protein_target"`
	Source             string         `json:"source"`
}

// ProjectionPointView is one day of the trajectory chart. ActualWeight is
// omitted on days without a weigh-in.
type ProjectionPointView struct {
	Date            store.DateOnly `json:"date"`
	PlannedWeight   float64        `json:"planned_weight"`
	ProjectedWeight float64        `json:"projected_weight"`
	ActualWeight    *float64       `json:"actual_weight,omitempty"`
}

type WeightObservationView struct {
	Date   store.DateOnly `json:"date"`
	Weight float64        `json:"weight"`
}

// TrajectoryView is the body of GET /api/progress/trajectory.
type TrajectoryView struct {
	Profile             GoalProfileView         `json:"profile"`
	GoalDate            store.DateOnly          `json:"goal_date"`
	TotalDays           int                     `json:"total_days"`
	PlannedDailyDeficit float64                 `json:"planned_daily_deficit"`
	CumulativeDeviation float64                 `json:"cumulative_deviation"`
	Points              []ProjectionPointView   `json:"points"`
	Observations        []WeightObservationView `json:"observations"`
}

type DailyScoreView struct {
	Date          store.DateOnly `json:"date"`
	TrackingScore int            `json:"tracking_score"`
	StreakScore   int            `json:"streak_score"`
	ProteinScore  int            `json:"protein_score"`
	Streak        int            `json:"streak"`
}

// ConsistencyView is the body of GET /api/progress/consistency.
type ConsistencyView struct {
	Start            store.DateOnly   `json:"start"`
	End              store.DateOnly   `json:"end"`
	Total            int              `json:"total"`
	DailyTrackingAvg int              `json:"daily_tracking_avg"`
	StreakAvg        int              `json:"streak_avg"`
	ProteinAvg       int              `json:"protein_avg"`
	LongestStreak    int              `json:"longest_streak"`
	AvgProteinLogged float64          `json:"avg_protein_logged"`
	ProteinTarget    float64          `json:"protein_target"`
	DaysWithData     int              `json:"days_with_data"`
	Days             []DailyScoreView `json:"days"`
}

/* ─── Conversion ─────────────────────────────────────────────────────── */

func NewGoalProfileView(p progress.GoalProfile) GoalProfileView {
	return GoalProfileView{
		StartDate:          store.DateOnly{Time: p.StartDate},
		StartWeight:        p.StartWeight,
		GoalWeight:         p.GoalWeight,
		WeeklyChangeRate:   p.WeeklyChangeRate,
		DailyCalorieTarget: p.DailyCalorieTarget,
		DailyProteinTarget: p.DailyProteinTarget,
		Source:             string(p.Source),
	}
}

func NewTrajectoryView(p progress.GoalProfile, t progress.Trajectory) TrajectoryView {
	points := make([]ProjectionPointView, len(t.Points))
	for i, pt := range t.Points {
		points[i] = ProjectionPointView{
			Date:            store.DateOnly{Time: pt.Date},
			PlannedWeight:   pt.PlannedWeight,
			ProjectedWeight: pt.ProjectedWeight,
			ActualWeight:    pt.ActualWeight,
		}
	}
	observations := make([]WeightObservationView, len(t.Observations))
	for i, o := range t.Observations {
		observations[i] = WeightObservationView{Date: store.DateOnly{Time: o.Date}, Weight: o.Weight}
	}
	return TrajectoryView{
		Profile:             NewGoalProfileView(p),
		GoalDate:            store.DateOnly{Time: t.GoalDate},
		TotalDays:           t.TotalDays,
		PlannedDailyDeficit: t.PlannedDailyDeficit,
		CumulativeDeviation: t.CumulativeDeviation,
		Points:              points,
		Observations:        observations,
	}
}

func NewConsistencyView(start, end time.Time, r progress.ConsistencyResult) ConsistencyView {
	days := make([]DailyScoreView, len(r.Days))
	for i, d := range r.Days {
		days[i] = DailyScoreView{
			Date:          store.DateOnly{Time: d.Date},
			TrackingScore: d.TrackingScore,
			StreakScore:   d.StreakScore,
			ProteinScore:  d.ProteinScore,
			Streak:        d.Streak,
		}
	}
	return ConsistencyView{
		Start:            store.DateOnly{Time: start},
		End:              store.DateOnly{Time: end},
		Total:            r.Total,
		DailyTrackingAvg: r.DailyTrackingAvg,
		StreakAvg:        r.StreakAvg,
		ProteinAvg:       r.ProteinAvg,
		LongestStreak:    r.LongestStreak,
		AvgProteinLogged: r.AvgProteinLogged,
		ProteinTarget:    r.ProteinTarget,
		DaysWithData:     r.DaysWithData,
		Days:             days,
	}
}
