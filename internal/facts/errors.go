package facts

import "fmt"

// CounterError represents a failure allocating a fact id.
type CounterError struct {
	Message string
	Cause   error
}

func (e *CounterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("counter error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("counter error: %s", e.Message)
}

func (e *CounterError) Unwrap() error {
	return e.Cause
}

// FactError represents a failure in the fact service.
type FactError struct {
	Message string
	Cause   error
}

func (e *FactError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fact error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("fact error: %s", e.Message)
}

func (e *FactError) Unwrap() error {
	return e.Cause
}
