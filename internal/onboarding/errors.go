package onboarding

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound is returned by a Gateway when the user never
	// completed onboarding.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrUnknownStep is returned when a step name is not part of the wizard.
	ErrUnknownStep = errors.New("unknown onboarding step")
)

// StepError rejects the input of a single wizard step.
type StepError struct {
	Step    StepName
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

// ValidationError carries every violation found in a draft. Error returns
// the first one, which is what a single-message client shows.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid profile"
	}
	return e.Violations[0].Message
}

// GatewayError is a write rejected by the persistence gateway. Reason is
// surfaced to the user verbatim.
type GatewayError struct {
	Reason string
	Err    error
}

func (e *GatewayError) Error() string {
	return e.Reason
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
