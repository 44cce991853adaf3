package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
	"github.com/robertojose17/MacroGoal-sub000/internal/report"
)

type app struct {
	reporter *report.Reporter
	out      io.Writer
	now      func() time.Time

	userID   int
	today    string
	jsonMode bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "progress-report",
		Short:         "Print progress analytics for a user",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&a.userID, "user", 0, "User id")
	root.PersistentFlags().StringVar(&a.today, "today", "", "Reference date YYYY-MM-DD (default: today)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "Print JSON instead of a table")
	_ = root.MarkPersistentFlagRequired("user")

	root.AddCommand(
		newGoalCmd(a),
		newTrajectoryCmd(a),
		newConsistencyCmd(a),
	)
	return root
}

func newGoalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "goal",
		Short: "Show the resolved goal profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.referenceDay()
			if err != nil {
				return err
			}
			p, err := a.reporter.GoalProfile(cmd.Context(), a.userID, today)
			if err != nil {
				return explain(err)
			}
			if a.jsonMode {
				return a.printJSON(report.NewGoalProfileView(p))
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "source\t%s\n", p.Source)
			fmt.Fprintf(w, "start date\t%s\n", progress.DayKey(p.StartDate))
			fmt.Fprintf(w, "start weight\t%.1f lb\n", p.StartWeight)
			fmt.Fprintf(w, "goal weight\t%.1f lb\n", p.GoalWeight)
			fmt.Fprintf(w, "weekly change\t%.2f lb\n", p.WeeklyChangeRate)
			fmt.Fprintf(w, "calorie target\t%.0f kcal\n", p.DailyCalorieTarget)
			fmt.Fprintf(w, "protein target\t%.0f g\n", p.DailyProteinTarget)
			return w.Flush()
		},
	}
}

func newTrajectoryCmd(a *app) *cobra.Command {
	var every int

	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Show the planned and projected weight series",
		RunE: func(cmd *cobra.Command, args []string) error {
			if every < 1 {
				return fmt.Errorf("--every must be at least 1")
			}
			today, err := a.referenceDay()
			if err != nil {
				return err
			}
			t, p, err := a.reporter.Trajectory(cmd.Context(), a.userID, today)
			if err != nil {
				return explain(err)
			}
			if a.jsonMode {
				return a.printJSON(report.NewTrajectoryView(p, t))
			}

			fmt.Fprintf(a.out, "goal date %s (%d days), planned deficit %.0f kcal/day, deviation %+.2f lb\n\n",
				progress.DayKey(t.GoalDate), t.TotalDays, t.PlannedDailyDeficit, t.CumulativeDeviation)
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "date\tplanned\tprojected\tactual\t")
			for i, pt := range t.Points {
				if i%every != 0 && i != len(t.Points)-1 {
					continue
				}
				actual := "-"
				if pt.ActualWeight != nil {
					actual = fmt.Sprintf("%.1f", *pt.ActualWeight)
				}
				fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%s\t\n", progress.DayKey(pt.Date), pt.PlannedWeight, pt.ProjectedWeight, actual)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&every, "every", 7, "Print every Nth day (the goal date is always printed)")
	return cmd
}

func newConsistencyCmd(a *app) *cobra.Command {
	var start, end string
	var days int

	cmd := &cobra.Command{
		Use:   "consistency",
		Short: "Show the consistency score for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			rangeEnd, err := a.referenceDay()
			if err != nil {
				return err
			}
			if end != "" {
				if rangeEnd, err = progress.ParseDay(end); err != nil {
					return fmt.Errorf("invalid --end, expected YYYY-MM-DD")
				}
			}
			rangeStart := progress.AddDays(rangeEnd, -(days - 1))
			if start != "" {
				if rangeStart, err = progress.ParseDay(start); err != nil {
					return fmt.Errorf("invalid --start, expected YYYY-MM-DD")
				}
			}

			r, err := a.reporter.Consistency(cmd.Context(), a.userID, rangeStart, rangeEnd)
			if err != nil {
				return explain(err)
			}
			if a.jsonMode {
				return a.printJSON(report.NewConsistencyView(rangeStart, rangeEnd, r))
			}

			fmt.Fprintf(a.out, "%s .. %s\n\n", progress.DayKey(rangeStart), progress.DayKey(rangeEnd))
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "total\t%d / 100\n", r.Total)
			fmt.Fprintf(w, "tracking\t%d / 40\n", r.DailyTrackingAvg)
			fmt.Fprintf(w, "streak\t%d / 35\n", r.StreakAvg)
			fmt.Fprintf(w, "protein\t%d / 25\n", r.ProteinAvg)
			fmt.Fprintf(w, "longest streak\t%d days\n", r.LongestStreak)
			fmt.Fprintf(w, "days tracked\t%d\n", r.DaysWithData)
			fmt.Fprintf(w, "avg protein\t%.0f g of %.0f g\n", r.AvgProteinLogged, r.ProteinTarget)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Range start YYYY-MM-DD (default: --days before --end)")
	cmd.Flags().StringVar(&end, "end", "", "Range end YYYY-MM-DD (default: --today)")
	cmd.Flags().IntVar(&days, "days", 30, "Range length when --start is omitted")
	return cmd
}

// referenceDay returns --today, or the current UTC date.
func (a *app) referenceDay() (time.Time, error) {
	if a.today == "" {
		now := time.Now
		if a.now != nil {
			now = a.now
		}
		return progress.Day(now().UTC()), nil
	}
	d, err := progress.ParseDay(a.today)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today, expected YYYY-MM-DD")
	}
	return d, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// explain turns engine refusals into messages a user can act on.
func explain(err error) error {
	var insufficient *progress.InsufficientProfileDataError
	switch {
	case errors.As(err, &insufficient):
		return fmt.Errorf("set a goal first: missing %v", insufficient.Missing)
	case errors.Is(err, progress.ErrEngine):
		return fmt.Errorf("projection disabled: %w", err)
	default:
		return err
	}
}
