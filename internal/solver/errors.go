package solver

import "errors"

// Domain errors for integration. All of them are fatal to the caller:
// after any of these the driver state is not safe to resume from.
var (
	// ErrInvalidState indicates the step produced NaN or Inf.
	ErrInvalidState = errors.New("solver: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive step fell below the minimum
	// while trying to satisfy the tolerances.
	ErrStepTooSmall = errors.New("solver: adaptive step below minimum")

	// ErrTooManySteps indicates the per-call step budget was exhausted
	// before reaching the target time.
	ErrTooManySteps = errors.New("solver: step budget exhausted")

	// ErrBackwardTime indicates Advance was called with a target earlier
	// than the current time.
	ErrBackwardTime = errors.New("solver: target time before current time")
)

// StepError wraps a domain error with the step and time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
