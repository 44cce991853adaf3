package progress

import (
	"math"
	"time"
)

// LogEntry is one logged item (or a pre-summed day) as delivered by the
// query layer.
type LogEntry struct {
	Date     time.Time
	Calories float64
	Protein  float64
}

// RawWeightObservation is a weight row before validation. Weight is nil when
// the upstream column was NULL.
type RawWeightObservation struct {
	Date   time.Time
	Weight *float64
	Unit   *string
}

// DailyLog is the per-date reduction of log entries.
type DailyLog struct {
	Date             time.Time
	CaloriesConsumed float64
	ProteinConsumed  float64
	HasEntries       bool
}

// WeightObservation is a validated weight in pounds.
type WeightObservation struct {
	Date   time.Time
	Weight float64
}

// DailyLogs indexes DailyLog values by DayKey.
type DailyLogs map[string]DailyLog

// On returns the log for day's calendar date.
func (l DailyLogs) On(day time.Time) (DailyLog, bool) {
	d, ok := l[DayKey(day)]
	return d, ok
}

// Aggregate is the Daily Aggregator output consumed by the projector and scorer.
type Aggregate struct {
	Logs         DailyLogs
	Observations []WeightObservation
}

// AggregateLogs sums entries per calendar date. A date with any entry is
// marked HasEntries even when every contribution is zero; non-finite or
// negative contributions count as zero.
func AggregateLogs(entries []LogEntry) DailyLogs {
	logs := make(DailyLogs)
	for _, e := range entries {
		key := DayKey(e.Date)
		day, ok := logs[key]
		if !ok {
			day = DailyLog{Date: Day(e.Date)}
		}
		day.HasEntries = true
		day.CaloriesConsumed += nonNegative(e.Calories)
		day.ProteinConsumed += nonNegative(e.Protein)
		logs[key] = day
	}
	return logs
}

// Aggregate reduces raw entries into DailyLogs and validates weight
// observations. Observations with a missing, non-finite or non-positive
// weight are dropped; the rest are converted to pounds and keep input order.
func (a *Analyzer) Aggregate(entries []LogEntry, observations []RawWeightObservation) Aggregate {
	valid := make([]WeightObservation, 0, len(observations))
	dropped := 0
	for _, o := range observations {
		if o.Weight == nil || !isPositiveFinite(*o.Weight) {
			dropped++
			continue
		}
		valid = append(valid, WeightObservation{
			Date:   Day(o.Date),
			Weight: a.NormalizeMass(*o.Weight, o.Unit, "weight_observation"),
		})
	}
	if dropped > 0 {
		a.log.WithField("dropped", dropped).Debug("dropped invalid weight observations")
	}

	return Aggregate{
		Logs:         AggregateLogs(entries),
		Observations: valid,
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func isPositiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
