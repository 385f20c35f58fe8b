package vectorstore

import "fmt"

// StoreError represents a failed vector database operation.
type StoreError struct {
	Op         string
	Message    string
	StatusCode int
	Cause      error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vector store error: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("vector store error: %s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
