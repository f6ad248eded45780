package rvea

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when the run cannot start because of an
	// invalid configuration or an inconsistent problem.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDegenerateSelection is returned when a generation has no candidate
	// left to select from.
	ErrDegenerateSelection = errors.New("degenerate selection")
)

// RunError is a terminal failure of a run. Generation is the index of the
// generation during which the run stopped, -1 before the first generation.
type RunError struct {
	Generation int
	Err        error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: generation %d: %v", Name, e.Generation, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
