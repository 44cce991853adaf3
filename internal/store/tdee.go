package store

import (
	"math"
	"time"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// computeTDEE estimates BMR (Mifflin-St Jeor) and TDEE from the body profile
// as of today. Returns ok=false when a required field is nil, the activity
// level is unknown, or the age is implausible.
func computeTDEE(s *settingsRow, today time.Time) (bmr, tdee int, ok bool) {
	if s.Sex == nil || s.DateOfBirth == nil || s.HeightCM == nil ||
		s.WeightLBS == nil || s.ActivityLevel == nil {
		return 0, 0, false
	}

	age := today.Year() - s.DateOfBirth.Year()
	if today.Before(s.DateOfBirth.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, 0, false
	}

	weightKG := *s.WeightLBS / progress.PoundsPerKilogram
	bmrF := 10*weightKG + 6.25**s.HeightCM - 5*float64(age)
	if *s.Sex == "male" {
		bmrF += 5
	} else {
		bmrF -= 161
	}

	mult, found := activityMultipliers[*s.ActivityLevel]
	if !found {
		return 0, 0, false
	}
	return int(math.Round(bmrF)), int(math.Round(bmrF * mult)), true
}
