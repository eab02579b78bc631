package gateway

import "fmt"

// UnauthorizedError is returned when the caller's credentials cannot be resolved
type UnauthorizedError struct {
	Message string
	Cause   error
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unauthorized: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unauthorized: %s", e.Message)
}

func (e *UnauthorizedError) Unwrap() error {
	return e.Cause
}

// CompositionError is returned when synthesis fails after credits were debited.
// The debit has been refunded unless RefundErr is set.
type CompositionError struct {
	Message   string
	Cause     error
	RefundErr error
}

func (e *CompositionError) Error() string {
	msg := fmt.Sprintf("brief composition failed: %s", e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.RefundErr != nil {
		msg = fmt.Sprintf("%s (refund failed: %v)", msg, e.RefundErr)
	}
	return msg
}

func (e *CompositionError) Unwrap() error {
	return e.Cause
}

// StoreError is returned when a composed brief could not be persisted. The
// debit has been refunded unless RefundErr is set.
type StoreError struct {
	Message   string
	Cause     error
	RefundErr error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("brief store failed: %s", e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.RefundErr != nil {
		msg = fmt.Sprintf("%s (refund failed: %v)", msg, e.RefundErr)
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
