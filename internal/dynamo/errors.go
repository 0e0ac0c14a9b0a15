package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a physics configuration that cannot be simulated.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrInvalidState indicates a position or velocity that is NaN, Inf or out of range.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownPreset indicates a preset name with no registered configuration.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrNoData indicates a stored run without any samples.
	ErrNoData = errors.New("dynamo: no data")

	// ErrCanceled indicates the simulation was interrupted by its context.
	ErrCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimError wraps an error with the step it happened at.
type SimError struct {
	Step    int
	Time    float64
	Message string
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
