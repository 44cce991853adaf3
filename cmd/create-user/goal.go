package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
)

// goalInput is the initial weight goal entered at the prompt, in Unit.
type goalInput struct {
	StartWeight      float64
	GoalWeight       float64
	Unit             string
	WeeklyChangeRate float64
}

// parseGoalInput validates the goal prompts. A blank start weight skips the
// goal and returns nil.
func parseGoalInput(start, goal, unit, rate string) (*goalInput, error) {
	if start == "" {
		return nil, nil
	}
	if unit == "" {
		unit = "lb"
	}
	if _, ok := progress.ResolveUnit(&unit); !ok {
		return nil, fmt.Errorf("unknown unit %q, expected lb or kg", unit)
	}

	g := &goalInput{Unit: unit, WeeklyChangeRate: progress.DefaultWeeklyChangeRate}
	var err error
	if g.StartWeight, err = positive("start weight", start); err != nil {
		return nil, err
	}
	if g.GoalWeight, err = positive("goal weight", goal); err != nil {
		return nil, err
	}
	if rate != "" {
		if g.WeeklyChangeRate, err = positive("weekly change rate", rate); err != nil {
			return nil, err
		}
	}

	p := progress.GoalProfile{
		StartWeight:      g.startLbs(),
		GoalWeight:       g.goalLbs(),
		WeeklyChangeRate: g.rateLbs(),
	}
	if _, err := progress.PlannedDays(p); err != nil {
		return nil, fmt.Errorf("goal cannot be planned: %w", err)
	}
	return g, nil
}

func (g *goalInput) startLbs() float64 { return toPounds(g.StartWeight, g.Unit) }
func (g *goalInput) goalLbs() float64  { return toPounds(g.GoalWeight, g.Unit) }
func (g *goalInput) rateLbs() float64  { return toPounds(g.WeeklyChangeRate, g.Unit) }

func toPounds(v float64, unit string) float64 {
	lbs, _ := progress.ToPounds(v, &unit)
	return lbs
}

func positive(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid %s %q", field, raw)
	}
	return v, nil
}
