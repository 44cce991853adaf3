package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestProfileFromSettings_Nil(t *testing.T) {
	if p := profileFromSettings(nil, today); p != nil {
		t.Errorf("expected nil profile, got %+v", p)
	}
}

func TestProfileFromSettings_FullProfile(t *testing.T) {
	s := makeSettings("male", born(1990, 1, 1), 175, 180, "sedentary")
	target := 165.0
	s.TargetWeightLBS = &target
	s.ProteinTargetG = 150

	p := profileFromSettings(s, today)
	if p.MaintenanceCalories == nil || *p.MaintenanceCalories != 2082 {
		t.Errorf("maintenance = %v, want 2082", p.MaintenanceCalories)
	}
	if p.ProteinTarget == nil || *p.ProteinTarget != 150 {
		t.Errorf("protein target = %v, want 150", p.ProteinTarget)
	}
	if *p.CurrentWeight != 180 || *p.TargetWeight != 165 {
		t.Errorf("weights = %v/%v, want 180/165", *p.CurrentWeight, *p.TargetWeight)
	}
	if p.Unit == nil || *p.Unit != "lb" {
		t.Errorf("unit = %v, want lb", p.Unit)
	}
}

// TestProfileFromSettings_IncompleteBody verifies that a row without a body
// profile yields no maintenance estimate and no protein target, so the
// resolver falls back to its defaults.
func TestProfileFromSettings_IncompleteBody(t *testing.T) {
	p := profileFromSettings(&settingsRow{UserID: 1}, today)
	if p.MaintenanceCalories != nil {
		t.Errorf("expected nil maintenance, got %v", *p.MaintenanceCalories)
	}
	if p.ProteinTarget != nil {
		t.Errorf("expected nil protein target, got %v", *p.ProteinTarget)
	}
}

func TestGoalRow_ToGoalRow(t *testing.T) {
	var missing *goalRow
	if missing.toGoalRow() != nil {
		t.Error("nil goalRow should convert to nil")
	}

	start := DateOnly{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}
	weight := 90.0
	unit := "kg"
	g := (&goalRow{IsActive: true, StartDate: &start, StartWeight: &weight, Unit: &unit}).toGoalRow()
	if g.StartDate == nil || !g.StartDate.Equal(start.Time) {
		t.Errorf("start date = %v, want %v", g.StartDate, start.Time)
	}
	if !g.IsActive || *g.StartWeight != 90 || *g.Unit != "kg" {
		t.Errorf("unexpected conversion: %+v", g)
	}

	// A NULL start_date scans as a zero DateOnly.
	g = (&goalRow{StartDate: &DateOnly{}}).toGoalRow()
	if g.StartDate != nil {
		t.Errorf("expected nil start date, got %v", *g.StartDate)
	}
}

func TestLogItemRow_ToLogEntry(t *testing.T) {
	protein := 32.5
	d := DateOnly{time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}

	e := logItemRow{Date: d, Calories: 640, ProteinG: &protein}.toLogEntry()
	if e.Calories != 640 || e.Protein != 32.5 || !e.Date.Equal(d.Time) {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e := (logItemRow{Date: d, Calories: 100}).toLogEntry(); e.Protein != 0 {
		t.Errorf("nil protein should count as 0, got %v", e.Protein)
	}
}

func TestDataVersion_Key(t *testing.T) {
	empty := DataVersion{}
	if empty.Key() != "0:0" {
		t.Errorf("empty key = %q", empty.Key())
	}

	ts := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	a := DataVersion{LastModified: &ts, RowCount: 12}
	b := DataVersion{LastModified: &ts, RowCount: 11}
	if a.Key() == b.Key() {
		t.Error("a deleted row must change the key")
	}
	later := ts.Add(time.Millisecond)
	c := DataVersion{LastModified: &later, RowCount: 12}
	if a.Key() == c.Key() {
		t.Error("an update must change the key")
	}
}

func TestDataVersionSQL_CoversEveryEngineTable(t *testing.T) {
	for _, table := range []string{"goals", "calorie_log_items", "weight_log", "calorie_log_user_settings"} {
		if !strings.Contains(dataVersionSQL, "(SELECT MAX(updated_at) FROM "+table+" WHERE user_id = @userID)") {
			t.Errorf("last_modified ignores %s", table)
		}
		// Deleting the row is only visible through the count.
		if !strings.Contains(dataVersionSQL, "(SELECT COUNT(*) FROM "+table+" WHERE user_id = @userID)") {
			t.Errorf("row_count ignores %s", table)
		}
	}
}

func TestDateOnly_JSON(t *testing.T) {
	var d DateOnly
	if err := json.Unmarshal([]byte(`"2026-03-08"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-03-08"` {
		t.Errorf("marshal = %s", b)
	}
	if err := json.Unmarshal([]byte(`"03/08/2026"`), &d); err == nil {
		t.Error("expected an error for a non ISO date")
	}
}
