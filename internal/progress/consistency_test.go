package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakScore(t *testing.T) {
	assert.Equal(t, 0, StreakScore(0))
	assert.Equal(t, 0, StreakScore(-4))
	assert.Equal(t, 3, StreakScore(1))
	assert.Equal(t, 18, StreakScore(7))
	assert.Equal(t, 26, StreakScore(14))
	assert.Equal(t, 34, StreakScore(42))
	assert.Equal(t, 35, StreakScore(43))
	assert.Equal(t, 35, StreakScore(365))
}

func TestStreakCurve_IncreasingAndBounded(t *testing.T) {
	for n := 1; n < 300; n++ {
		assert.Greater(t, streakCurve(n+1), streakCurve(n), "n=%d", n)
		assert.Less(t, streakCurve(n), 35.0, "n=%d", n)
		assert.GreaterOrEqual(t, StreakScore(n+1), StreakScore(n), "n=%d", n)
	}
}

func TestProteinScore(t *testing.T) {
	cases := []struct {
		name     string
		consumed float64
		target   float64
		want     int
	}{
		{"on target", 150, 150, 25},
		{"nothing eaten", 0, 150, 0},
		{"no target", 150, 0, 0},
		{"94.9%", 94.9, 100, 20},
		{"95%", 95, 100, 25},
		{"105%", 105, 100, 25},
		{"105.1%", 105.1, 100, 24},
		{"110%", 110, 100, 24},
		{"112%", 112, 100, 23},
		{"80%", 80, 100, 20},
		{"79.9%", 79.9, 100, 15},
		{"60%", 60, 100, 15},
		{"40%", 40, 100, 10},
		{"39.9%", 39.9, 100, 5},
		{"20%", 20, 100, 3},
		{"double", 200, 100, 15},
		{"way over", 1000, 100, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ProteinScore(tc.consumed, tc.target))
		})
	}
}

func TestProteinScore_OvershootStaysInBand(t *testing.T) {
	for pct := 105.1; pct < 400; pct += 0.7 {
		s := ProteinScore(pct, 100)
		assert.Less(t, s, 25, "pct=%.1f", pct)
		assert.GreaterOrEqual(t, s, 15, "pct=%.1f", pct)
	}
}

func TestScoreConsistency_NoLogsInLongRangeIsZero(t *testing.T) {
	a, _ := testAnalyzer(t)
	p := GoalProfile{DailyProteinTarget: 150}

	res := a.ScoreConsistency(p, DailyLogs{}, day(t, "2026-03-01"), day(t, "2026-03-05"))

	assert.Zero(t, res.Total)
	assert.Zero(t, res.DailyTrackingAvg)
	assert.Zero(t, res.StreakAvg)
	assert.Zero(t, res.ProteinAvg)
	assert.Zero(t, res.LongestStreak)
	assert.Equal(t, 150.0, res.ProteinTarget)
	assert.NotNil(t, res.Days)
}

func TestScoreConsistency_ShortRangeWithoutTrackedDaysIsZero(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-03-01")
	logs := DailyLogs{DayKey(start): {Date: start, CaloriesConsumed: 0}}

	res := a.ScoreConsistency(GoalProfile{DailyProteinTarget: 100}, logs, start, AddDays(start, 1))
	assert.Zero(t, res.Total)
	assert.Zero(t, res.DaysWithData)

	res = a.ScoreConsistency(GoalProfile{DailyProteinTarget: 100}, DailyLogs{}, start, start)
	assert.Zero(t, res.Total)
}

func TestScoreConsistency_EndBeforeStartIsZero(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-03-10")
	logs := trackedDays(start, [3]float64{0, 2000, 100})

	res := a.ScoreConsistency(GoalProfile{DailyProteinTarget: 100}, logs, start, AddDays(start, -1))
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Days)
}

func TestScoreConsistency_AveragesOnlyOverTrackedDays(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-03-01")
	logs := trackedDays(start,
		[3]float64{0, 1900, 100},
		[3]float64{2, 2100, 50},
	)

	res := a.ScoreConsistency(GoalProfile{DailyProteinTarget: 100}, logs, start, AddDays(start, 2))

	require.Len(t, res.Days, 3)
	assert.Equal(t, []int{40, 0, 40}, []int{res.Days[0].TrackingScore, res.Days[1].TrackingScore, res.Days[2].TrackingScore})
	assert.Equal(t, []int{1, 0, 1}, []int{res.Days[0].Streak, res.Days[1].Streak, res.Days[2].Streak})
	assert.Equal(t, []int{25, 0, 10}, []int{res.Days[0].ProteinScore, res.Days[1].ProteinScore, res.Days[2].ProteinScore})

	assert.Equal(t, 2, res.DaysWithData)
	assert.Equal(t, 40, res.DailyTrackingAvg)
	assert.Equal(t, 3, res.StreakAvg)
	assert.Equal(t, 18, res.ProteinAvg)
	assert.Equal(t, 61, res.Total)
	assert.Equal(t, 1, res.LongestStreak)
	assert.InDelta(t, 75.0, res.AvgProteinLogged, 1e-9)
}

func TestScoreConsistency_UntrackedDaysDoNotDilute(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-03-01")
	logs := trackedDays(start, [3]float64{4, 2000, 100})

	res := a.ScoreConsistency(GoalProfile{DailyProteinTarget: 100}, logs, start, AddDays(start, 9))
	assert.Equal(t, 40+3+25, res.Total)
	assert.Equal(t, 1, res.DaysWithData)
	assert.Len(t, res.Days, 10)
}

func TestScoreConsistency_FullWeek(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-03-02")
	var days [][3]float64
	for i := 0; i < 7; i++ {
		days = append(days, [3]float64{float64(i), 2000, 150})
	}
	logs := trackedDays(start, days...)

	res := a.ScoreConsistency(GoalProfile{DailyProteinTarget: 150}, logs, start, AddDays(start, 6))

	// streak scores 3, 6, 9, 12, 14, 16, 18
	assert.Equal(t, 7, res.LongestStreak)
	assert.Equal(t, 11, res.StreakAvg)
	assert.Equal(t, 25, res.ProteinAvg)
	assert.Equal(t, 76, res.Total)
	assert.Equal(t, 150.0, res.AvgProteinLogged)
}

func TestScoreConsistency_MissedDayResetsStreak(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-03-01")
	logs := trackedDays(start,
		[3]float64{0, 2000, 0},
		[3]float64{1, 2000, 0},
		[3]float64{2, 2000, 0},
		[3]float64{4, 2000, 0},
	)

	res := a.ScoreConsistency(GoalProfile{}, logs, start, AddDays(start, 5))

	streaks := make([]int, len(res.Days))
	for i, d := range res.Days {
		streaks[i] = d.Streak
	}
	assert.Equal(t, []int{1, 2, 3, 0, 1, 0}, streaks)
	assert.Equal(t, 3, res.LongestStreak)
	assert.Zero(t, res.AvgProteinLogged)
}

func TestScoreConsistency_Idempotent(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-03-01")
	logs := trackedDays(start,
		[3]float64{0, 1800, 140},
		[3]float64{1, 2600, 90},
		[3]float64{3, 2000, 170},
		[3]float64{8, 1500, 33.3},
	)
	p := GoalProfile{DailyProteinTarget: 150}

	first := a.ScoreConsistency(p, logs, start, AddDays(start, 13))
	second := a.ScoreConsistency(p, logs, start, AddDays(start, 13))
	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(first.AvgProteinLogged), math.Float64bits(second.AvgProteinLogged))
}

func TestScoreConsistency_TotalWithinBounds(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "2026-01-01")
	var days [][3]float64
	for i := 0; i < 120; i++ {
		days = append(days, [3]float64{float64(i), 2000, 100})
	}

	res := a.ScoreConsistency(GoalProfile{DailyProteinTarget: 100}, trackedDays(start, days...), start, AddDays(start, 119))
	assert.LessOrEqual(t, res.Total, 100)
	assert.GreaterOrEqual(t, res.Total, 0)
	assert.Equal(t, 120, res.LongestStreak)
}

func TestScoreConsistency_ScoresLastDayOfCenturiesLongRange(t *testing.T) {
	a, _ := testAnalyzer(t)
	start := day(t, "1700-01-01")
	end := day(t, "2026-01-01")
	logs := trackedDays(end, [3]float64{0, 2000, 100})

	res := a.ScoreConsistency(GoalProfile{DailyProteinTarget: 100}, logs, start, end)
	require.Len(t, res.Days, 119070)
	assert.Equal(t, 1, res.DaysWithData)
	assert.Equal(t, 40, res.Days[len(res.Days)-1].TrackingScore)
	assert.Equal(t, 68, res.Total)
}
