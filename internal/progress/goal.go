package progress

import "time"

const (
	// DefaultWeeklyChangeRate is used when the goal row has no rate (lb/week).
	DefaultWeeklyChangeRate = 1.0
	// DefaultCalorieTarget is the last fallback for the daily calorie target.
	DefaultCalorieTarget = 2000.0
)

// GoalSource names the goal row a profile was resolved from.
type GoalSource string

const (
	GoalSourceActive     GoalSource = "active"
	GoalSourceMostRecent GoalSource = "most_recent"
	GoalSourceNone       GoalSource = "none"
)

// GoalRow is a goal record as stored upstream. Every numeric column is
// optional; weights and the weekly rate are in Unit.
type GoalRow struct {
	IsActive           bool
	StartDate          *time.Time
	StartWeight        *float64
	GoalWeight         *float64
	Unit               *string
	WeeklyChangeRate   *float64
	DailyCalorieTarget *float64
	DailyProteinTarget *float64
	CreatedAt          time.Time
}

// ProfileRow carries the user profile fields used as fallbacks when the goal
// row lacks them. Weights are in Unit.
type ProfileRow struct {
	MaintenanceCalories *float64
	ProteinTarget       *float64
	CurrentWeight       *float64
	TargetWeight        *float64
	Unit                *string
}

// GoalCandidates is everything the resolver may draw from.
type GoalCandidates struct {
	Active         *GoalRow
	MostRecent     *GoalRow
	AccountCreated *time.Time
	Profile        *ProfileRow
}

// GoalProfile is the resolved goal in pounds.
type GoalProfile struct {
	StartDate          time.Time
	StartWeight        float64
	GoalWeight         float64
	WeeklyChangeRate   float64
	DailyCalorieTarget float64
	DailyProteinTarget float64
	Source             GoalSource
}

// Validate checks the profile invariants. Invalid weights produce an
// InsufficientProfileDataError; an unusable weekly rate produces an
// EngineError since it can only come from a caller bypassing the resolver.
func (p GoalProfile) Validate() error {
	var missing []string
	if !isPositiveFinite(p.StartWeight) {
		missing = append(missing, "start_weight")
	}
	if !isPositiveFinite(p.GoalWeight) {
		missing = append(missing, "goal_weight")
	}
	if len(missing) > 0 {
		return &InsufficientProfileDataError{Missing: missing}
	}
	if !isPositiveFinite(p.WeeklyChangeRate) {
		return &EngineError{Op: "validate profile", Reason: "weekly change rate must be a finite number > 0"}
	}
	return nil
}

// ResolveGoalProfile builds a GoalProfile from the candidates. The goal row
// is the active one, else the most recent one. StartDate falls back from the
// goal row to the account creation date to today. Required weights are never
// guessed: when neither the goal row nor the profile yields a positive finite
// value an InsufficientProfileDataError is returned.
func (a *Analyzer) ResolveGoalProfile(c GoalCandidates, today time.Time) (GoalProfile, error) {
	goal, source := selectGoalRow(c)
	profile := c.Profile
	if profile == nil {
		profile = &ProfileRow{}
	}

	p := GoalProfile{
		StartDate:          Day(today),
		WeeklyChangeRate:   DefaultWeeklyChangeRate,
		DailyCalorieTarget: DefaultCalorieTarget,
		Source:             source,
	}

	switch {
	case goal != nil && goal.StartDate != nil:
		p.StartDate = Day(*goal.StartDate)
	case c.AccountCreated != nil:
		p.StartDate = Day(*c.AccountCreated)
	}

	var goalStart, goalTarget *float64
	var goalUnit *string
	if goal != nil {
		goalStart, goalTarget, goalUnit = goal.StartWeight, goal.GoalWeight, goal.Unit
	}

	var missing []string
	startWeight, ok := a.firstWeight("start_weight", goalStart, goalUnit, profile.CurrentWeight, profile.Unit)
	if !ok {
		missing = append(missing, "start_weight")
	}
	goalWeight, ok := a.firstWeight("goal_weight", goalTarget, goalUnit, profile.TargetWeight, profile.Unit)
	if !ok {
		missing = append(missing, "goal_weight")
	}
	p.StartWeight, p.GoalWeight = startWeight, goalWeight

	if goal != nil && goal.WeeklyChangeRate != nil {
		if !isPositiveFinite(*goal.WeeklyChangeRate) {
			missing = append(missing, "weekly_change_rate")
		} else {
			p.WeeklyChangeRate = a.NormalizeMass(*goal.WeeklyChangeRate, goal.Unit, "weekly_change_rate")
		}
	}

	if len(missing) > 0 {
		return GoalProfile{}, &InsufficientProfileDataError{Missing: missing}
	}

	switch {
	case goal != nil && goal.DailyCalorieTarget != nil && isPositiveFinite(*goal.DailyCalorieTarget):
		p.DailyCalorieTarget = *goal.DailyCalorieTarget
	case profile.MaintenanceCalories != nil && isPositiveFinite(*profile.MaintenanceCalories):
		p.DailyCalorieTarget = *profile.MaintenanceCalories
	}

	switch {
	case goal != nil && goal.DailyProteinTarget != nil && isPositiveFinite(*goal.DailyProteinTarget):
		p.DailyProteinTarget = *goal.DailyProteinTarget
	case profile.ProteinTarget != nil && isPositiveFinite(*profile.ProteinTarget):
		p.DailyProteinTarget = *profile.ProteinTarget
	}

	return p, nil
}

func selectGoalRow(c GoalCandidates) (*GoalRow, GoalSource) {
	switch {
	case c.Active != nil:
		return c.Active, GoalSourceActive
	case c.MostRecent != nil:
		return c.MostRecent, GoalSourceMostRecent
	default:
		return nil, GoalSourceNone
	}
}

// firstWeight returns the goal row value when usable, else the profile value,
// each converted with its own row's unit.
func (a *Analyzer) firstWeight(field string, fromGoal *float64, goalUnit *string, fromProfile *float64, profileUnit *string) (float64, bool) {
	if fromGoal != nil && isPositiveFinite(*fromGoal) {
		return a.NormalizeMass(*fromGoal, goalUnit, field), true
	}
	if fromProfile != nil && isPositiveFinite(*fromProfile) {
		return a.NormalizeMass(*fromProfile, profileUnit, field), true
	}
	return 0, false
}
