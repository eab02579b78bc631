package brief

import "fmt"

// InvalidIntakeError is returned when an intake lacks a required field
type InvalidIntakeError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidIntakeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid intake: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid intake: %s", e.Message)
}

func (e *InvalidIntakeError) Unwrap() error {
	return e.Cause
}

// CompositionError represents an unexpected failure while synthesizing a brief
type CompositionError struct {
	Message string
	Cause   error
}

func (e *CompositionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("composition error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("composition error: %s", e.Message)
}

func (e *CompositionError) Unwrap() error {
	return e.Cause
}
