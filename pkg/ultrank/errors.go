package ultrank

import (
	"errors"
	"fmt"
)

// ErrTooFewColumns indicates a sheet with fewer than two columns
// (distance plus at least one response line).
var ErrTooFewColumns = errors.New("fewer than 2 columns")

// ErrAllDistanceMissing indicates a sheet whose distance column has no
// defined values.
var ErrAllDistanceMissing = errors.New("all distance values missing")

// ErrDegenerateRange indicates a distance range that is non-finite or
// narrower than the configured step.
var ErrDegenerateRange = errors.New("invalid or too short distance range")

// ErrNoInterpolableLines indicates that no response line had enough valid
// points to interpolate.
var ErrNoInterpolableLines = errors.New("no interpolable response lines")

// SkipError reports that a sheet was skipped rather than aggregated. It is a
// per-sheet omission, not a fatal condition; callers log it and continue.
type SkipError struct {
	Sheet string
	Err   error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipping sheet %q: %v", e.Sheet, e.Err)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

func skipSheet(sheet string, err error) *SkipError {
	return &SkipError{Sheet: sheet, Err: err}
}
