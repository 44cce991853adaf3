package progress

import (
	"fmt"
	"math"
	"time"
)

const (
	// CaloriesPerPound is the energy equivalent of one pound of body mass.
	CaloriesPerPound = 3500.0

	// MaxProjectionDays caps the series length; slower plans are refused.
	MaxProjectionDays = 3660

	// dayDriftTolerance absorbs float error in totalWeeks*7 (e.g.
	// 100.00000000000001) so ceil does not add a spurious day.
	dayDriftTolerance = 1e-9
)

// ProjectionPoint is one day of the trajectory.
type ProjectionPoint struct {
	Date            time.Time
	PlannedWeight   float64
	ProjectedWeight float64
	// ActualWeight is the last observation recorded on Date, if any.
	ActualWeight *float64
}

// Trajectory is the Trajectory Projector result.
type Trajectory struct {
	Points              []ProjectionPoint
	GoalDate            time.Time
	TotalDays           int
	PlannedDailyDeficit float64
	CumulativeDeviation float64
	Observations        []WeightObservation
}

// PlannedDays returns ceil(|goal-start| / rate * 7), or 0 when start equals
// goal. It refuses to return a non-finite, negative or oversized count.
func PlannedDays(p GoalProfile) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	totalChange := math.Abs(p.GoalWeight - p.StartWeight)
	if totalChange == 0 {
		return 0, nil
	}
	totalWeeks := totalChange / p.WeeklyChangeRate
	days := math.Ceil(totalWeeks*7 - dayDriftTolerance)
	switch {
	case math.IsNaN(days) || math.IsInf(days, 0):
		return 0, &EngineError{Op: "planned days", Reason: "total days is not finite"}
	case days < 0:
		return 0, &EngineError{Op: "planned days", Reason: "total days is negative"}
	case days > MaxProjectionDays:
		return 0, &EngineError{
			Op:     "planned days",
			Reason: fmt.Sprintf("plan spans %.0f days, more than the %d day limit", days, MaxProjectionDays),
		}
	}
	return int(days), nil
}

// PlannedWeight is the linear plan value i days after the start.
func PlannedWeight(p GoalProfile, i, totalDays int) float64 {
	if totalDays == 0 {
		return p.StartWeight
	}
	return p.StartWeight + (p.GoalWeight-p.StartWeight)*float64(i)/float64(totalDays)
}

// ProjectTrajectory computes the planned and calorie-adjusted weight series
// from the profile start date to the goal date inclusive. Days on or before
// today with tracked logs move the projection by (calories-target)/3500 lb;
// every other day carries the running deviation forward unchanged.
func (a *Analyzer) ProjectTrajectory(p GoalProfile, logs DailyLogs, observations []WeightObservation, today time.Time) (Trajectory, error) {
	totalDays, err := PlannedDays(p)
	if err != nil {
		a.log.WithError(err).Warn("trajectory projection refused")
		return Trajectory{}, err
	}

	start := Day(p.StartDate)
	days := make([]time.Time, 0, totalDays+1)
	for d := range EachDay(start, AddDays(start, totalDays)) {
		days = append(days, d)
	}

	deviation := deviationScan(days, logs, p.DailyCalorieTarget, today)
	actual := lastObservationByDay(observations)

	points := make([]ProjectionPoint, len(days))
	for i, d := range days {
		planned := PlannedWeight(p, i, totalDays)
		points[i] = ProjectionPoint{
			Date:            d,
			PlannedWeight:   planned,
			ProjectedWeight: planned + deviation[i],
		}
		if w, ok := actual[DayKey(d)]; ok {
			points[i].ActualWeight = &w
		}
	}

	for _, pt := range points {
		if math.IsNaN(pt.ProjectedWeight) || math.IsInf(pt.ProjectedWeight, 0) {
			return Trajectory{}, &EngineError{Op: "project trajectory", Reason: "projection produced a non-finite weight"}
		}
	}

	if observations == nil {
		observations = []WeightObservation{}
	}
	return Trajectory{
		Points:              points,
		GoalDate:            days[len(days)-1],
		TotalDays:           totalDays,
		PlannedDailyDeficit: p.WeeklyChangeRate * CaloriesPerPound / 7,
		CumulativeDeviation: deviation[len(deviation)-1],
		Observations:        observations,
	}, nil
}

// deviationScan is a left scan over days returning the cumulative deviation
// (lb) after each day. Only tracked days on or before today contribute.
func deviationScan(days []time.Time, logs DailyLogs, calorieTarget float64, today time.Time) []float64 {
	out := make([]float64, len(days))
	todayKey := DayKey(today)
	var cumulative float64
	for i, d := range days {
		if DayKey(d) <= todayKey {
			if log, ok := logs.On(d); ok && log.HasEntries {
				cumulative += (log.CaloriesConsumed - calorieTarget) / CaloriesPerPound
			}
		}
		out[i] = cumulative
	}
	return out
}

func lastObservationByDay(observations []WeightObservation) map[string]float64 {
	byDay := make(map[string]float64, len(observations))
	for _, o := range observations {
		byDay[DayKey(o.Date)] = o.Weight
	}
	return byDay
}
