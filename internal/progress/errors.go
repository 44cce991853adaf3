package progress

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInsufficientProfileData indicates the goal profile cannot be built
	// from the upstream rows. Callers should show a "set your goal" state.
	ErrInsufficientProfileData = errors.New("insufficient profile data")

	// ErrEngine indicates a numeric guard tripped inside the engine (for
	// example a zero weekly change rate). The result must not be rendered.
	ErrEngine = errors.New("progress engine guard tripped")
)

// InsufficientProfileDataError lists the profile fields that were missing
// or failed validation.
type InsufficientProfileDataError struct {
	Missing []string
}

func (e *InsufficientProfileDataError) Error() string {
	return fmt.Sprintf("%s: missing or invalid %s", ErrInsufficientProfileData, strings.Join(e.Missing, ", "))
}

func (e *InsufficientProfileDataError) Is(target error) bool {
	return target == ErrInsufficientProfileData
}

// EngineError describes which operation refused to run and why.
type EngineError struct {
	Op     string
	Reason string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *EngineError) Is(target error) bool {
	return target == ErrEngine
}
