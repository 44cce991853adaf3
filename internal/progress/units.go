package progress

import "strings"

// PoundsPerKilogram is the fixed conversion used everywhere mass is normalized.
const PoundsPerKilogram = 2.20462

// MassUnit is a canonical mass unit tag.
type MassUnit string

const (
	Pounds    MassUnit = "lb"
	Kilograms MassUnit = "kg"
)

var massUnitSynonyms = map[string]MassUnit{
	"lb":        Pounds,
	"lbs":       Pounds,
	"pound":     Pounds,
	"pounds":    Pounds,
	"kg":        Kilograms,
	"kgs":       Kilograms,
	"kilogram":  Kilograms,
	"kilograms": Kilograms,
}

// ResolveUnit maps a raw unit tag to a MassUnit. A nil, empty or unknown tag
// resolves to Pounds with recognized=false so the caller can log the assumption.
func ResolveUnit(tag *string) (unit MassUnit, recognized bool) {
	if tag == nil {
		return Pounds, false
	}
	u, ok := massUnitSynonyms[strings.ToLower(strings.TrimSpace(*tag))]
	if !ok {
		return Pounds, false
	}
	return u, true
}

// ToPounds converts value, expressed in the unit named by tag, to pounds.
func ToPounds(value float64, tag *string) (lbs float64, recognized bool) {
	unit, recognized := ResolveUnit(tag)
	if unit == Kilograms {
		return value * PoundsPerKilogram, recognized
	}
	return value, recognized
}
