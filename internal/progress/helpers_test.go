package progress

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// testAnalyzer returns an Analyzer writing to a discarded logger plus the hook
// that captures its entries.
func testAnalyzer(t *testing.T) (*Analyzer, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewAnalyzer(logger), hook
}

// day parses a YYYY-MM-DD literal, failing the test on a typo.
func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}

// trackedDays builds DailyLogs with one tracked day per (offset, calories, protein) triple.
func trackedDays(start time.Time, days ...[3]float64) DailyLogs {
	entries := make([]LogEntry, 0, len(days))
	for _, d := range days {
		entries = append(entries, LogEntry{
			Date:     AddDays(start, int(d[0])),
			Calories: d[1],
			Protein:  d[2],
		})
	}
	return AggregateLogs(entries)
}
