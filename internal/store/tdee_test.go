package store

import (
	"testing"
	"time"
)

// today is fixed so age-dependent expectations are exact.
var today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

// makeSettings constructs a fully-populated settingsRow pointer for use in
// computeTDEE tests. Individual tests nil out specific fields to exercise
// missing-field guards.
func makeSettings(sex string, dob time.Time, heightCM, weightLBS float64, activityLevel string) *settingsRow {
	d := DateOnly{dob}
	return &settingsRow{
		Sex:           &sex,
		DateOfBirth:   &d,
		HeightCM:      &heightCM,
		WeightLBS:     &weightLBS,
		ActivityLevel: &activityLevel,
	}
}

func born(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

/* ─── Missing-field guard tests ──────────────────────────────────────── */

// TestComputeTDEE_MissingFields verifies that ok=false is returned when any
// required profile field is nil.
func TestComputeTDEE_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(s *settingsRow)
	}{
		{"nil Sex", func(s *settingsRow) { s.Sex = nil }},
		{"nil DateOfBirth", func(s *settingsRow) { s.DateOfBirth = nil }},
		{"nil HeightCM", func(s *settingsRow) { s.HeightCM = nil }},
		{"nil WeightLBS", func(s *settingsRow) { s.WeightLBS = nil }},
		{"nil ActivityLevel", func(s *settingsRow) { s.ActivityLevel = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := makeSettings("male", born(1990, 1, 1), 175, 180, "sedentary")
			tc.mutFn(s)
			if _, _, ok := computeTDEE(s, today); ok {
				t.Errorf("expected ok=false when %s, got ok=true", tc.name)
			}
		})
	}
}

/* ─── Input validation guard tests ───────────────────────────────────── */

func TestComputeTDEE_UnknownActivityLevel(t *testing.T) {
	s := makeSettings("male", born(1990, 1, 1), 175, 180, "unknown")
	if _, _, ok := computeTDEE(s, today); ok {
		t.Error("expected ok=false for unknown activity level, got ok=true")
	}
}

func TestComputeTDEE_ImplausibleAge(t *testing.T) {
	for _, dob := range []time.Time{born(2027, 1, 1), born(1826, 1, 1)} {
		s := makeSettings("male", dob, 175, 180, "sedentary")
		if _, _, ok := computeTDEE(s, today); ok {
			t.Errorf("expected ok=false for date of birth %s, got ok=true", dob.Format("2006-01-02"))
		}
	}
}

/* ─── BMR / TDEE accuracy tests ──────────────────────────────────────── */

// Inputs: born 1990-01-01 (36 on 2026-10-16), 175cm, 180lbs.
// weightKG = 180/2.20462 ≈ 81.647, male bmr = 816.47 + 1093.75 - 180 + 5 ≈ 1735.2.
func TestComputeTDEE_Values(t *testing.T) {
	cases := []struct {
		name     string
		sex      string
		dob      time.Time
		activity string
		wantBMR  int
		wantTDEE int
	}{
		{"male sedentary", "male", born(1990, 1, 1), "sedentary", 1735, 2082},
		{"female sedentary", "female", born(1990, 1, 1), "sedentary", 1569, 1883},
		{"male very active", "male", born(1990, 1, 1), "very_active", 1735, 3297},
		{"birthday tomorrow", "male", born(1990, 10, 17), "sedentary", 1740, 2088},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bmr, tdee, ok := computeTDEE(makeSettings(tc.sex, tc.dob, 175, 180, tc.activity), today)
			if !ok {
				t.Fatal("expected ok=true, got ok=false")
			}
			if bmr != tc.wantBMR {
				t.Errorf("bmr = %d, want %d", bmr, tc.wantBMR)
			}
			if tdee != tc.wantTDEE {
				t.Errorf("tdee = %d, want %d", tdee, tc.wantTDEE)
			}
		})
	}
}
