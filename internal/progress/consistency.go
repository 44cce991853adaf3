package progress

import (
	"math"
	"time"
)

const (
	trackingPoints = 40
	streakPoints   = 35
	proteinPoints  = 25

	streakGrowth = 0.1
)

// MaxConsistencyDays caps the length of a scored range, matching the longest
// plan the projector will draw.
const MaxConsistencyDays = MaxProjectionDays

// DailyScore is one day's sub-scores.
type DailyScore struct {
	Date          time.Time
	TrackingScore int
	StreakScore   int
	ProteinScore  int
	Streak        int
}

// ConsistencyResult summarizes adherence over a date range.
type ConsistencyResult struct {
	DailyTrackingAvg int
	StreakAvg        int
	ProteinAvg       int
	Total            int
	LongestStreak    int
	AvgProteinLogged float64
	ProteinTarget    float64
	DaysWithData     int
	Days             []DailyScore
}

// StreakScore maps a streak length to 0..35 on a saturating curve:
// 3 at day 1, 18 at day 7, 26 at day 14, 35 from day 43 on.
func StreakScore(streak int) int {
	if streak <= 0 {
		return 0
	}
	return int(math.Round(streakCurve(streak)))
}

func streakCurve(streak int) float64 {
	return streakPoints * (1 - math.Exp(-streakGrowth*float64(streak)))
}

// ProteinPercent returns consumed as a percentage of target, 0 when there is
// no target.
func ProteinPercent(consumed, target float64) float64 {
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return 0
	}
	return 100 * consumed / target
}

// ProteinScore grades protein intake against the target (0..25). 95-105% is
// full marks; below that the score steps down in tiers and under 40% it
// scales linearly to 0. Overshooting 105% loses at least one point per
// started 5% but never drops below 15.
func ProteinScore(consumed, target float64) int {
	pct := ProteinPercent(consumed, target)
	switch {
	case pct > 105:
		penalty := math.Ceil(math.Min(10, (pct-105)/5))
		return int(math.Max(15, proteinPoints-penalty))
	case pct >= 95:
		return proteinPoints
	case pct >= 80:
		return 20
	case pct >= 60:
		return 15
	case pct >= 40:
		return 10
	default:
		return int(math.Round(pct / 40 * 5))
	}
}

// ScoreConsistency scores every day of [rangeStart, rangeEnd] and averages the
// sub-scores over the days that were tracked. Untracked days reset the streak
// to zero and are otherwise ignored. A range longer than two days without a
// single log, or a range with no tracked day, scores zero.
func (a *Analyzer) ScoreConsistency(p GoalProfile, logs DailyLogs, rangeStart, rangeEnd time.Time) ConsistencyResult {
	zero := ConsistencyResult{
		ProteinTarget: p.DailyProteinTarget,
		Days:          []DailyScore{},
	}

	rangeDays := DaysBetween(rangeStart, rangeEnd) + 1
	if rangeDays <= 0 {
		return zero
	}

	anyLog := false
	for d := range EachDay(rangeStart, rangeEnd) {
		if _, ok := logs.On(d); ok {
			anyLog = true
			break
		}
	}
	if rangeDays > 2 && !anyLog {
		a.log.WithField("range_days", rangeDays).Debug("no logs in range, consistency score is zero")
		return zero
	}

	days := make([]DailyScore, 0, rangeDays)
	var streak, longest, withData int
	var sumTracking, sumStreak, sumProtein int
	var proteinLoggedSum float64
	var proteinLoggedDays int
	for d := range EachDay(rangeStart, rangeEnd) {
		log, ok := logs.On(d)
		tracked := ok && log.HasEntries

		score := DailyScore{Date: d}
		if tracked {
			streak++
			score.TrackingScore = trackingPoints
			score.ProteinScore = ProteinScore(log.ProteinConsumed, p.DailyProteinTarget)
		} else {
			streak = 0
		}
		score.Streak = streak
		score.StreakScore = StreakScore(streak)
		longest = max(longest, streak)

		if score.TrackingScore > 0 {
			withData++
			sumTracking += score.TrackingScore
			sumStreak += score.StreakScore
			sumProtein += score.ProteinScore
		}
		if ok && log.ProteinConsumed > 0 {
			proteinLoggedSum += log.ProteinConsumed
			proteinLoggedDays++
		}
		days = append(days, score)
	}

	if withData == 0 {
		return zero
	}

	avgTracking := float64(sumTracking) / float64(withData)
	avgStreak := float64(sumStreak) / float64(withData)
	avgProtein := float64(sumProtein) / float64(withData)

	total := int(math.Round(avgTracking + avgStreak + avgProtein))
	total = min(max(total, 0), 100)

	var avgProteinLogged float64
	if proteinLoggedDays > 0 {
		avgProteinLogged = proteinLoggedSum / float64(proteinLoggedDays)
	}

	return ConsistencyResult{
		DailyTrackingAvg: int(math.Round(avgTracking)),
		StreakAvg:        int(math.Round(avgStreak)),
		ProteinAvg:       int(math.Round(avgProtein)),
		Total:            total,
		LongestStreak:    longest,
		AvgProteinLogged: avgProteinLogged,
		ProteinTarget:    p.DailyProteinTarget,
		DaysWithData:     withData,
		Days:             days,
	}
}
