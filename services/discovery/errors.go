package discovery

import "fmt"

// ValidationError reports bad input shape or range. Maps to a 4xx at the
// boundary; the message names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RetrievalError wraps a Catalog Store failure. Distinct from an empty
// result set; maps to a 5xx and is never retried by the engine.
type RetrievalError struct {
	Op  string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("catalog retrieval failed during %s: %v", e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// AssemblyError reports a store failure while joining a ranked page back
// to display records. A shrunken page is not an assembly error.
type AssemblyError struct {
	Err error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("result assembly failed: %v", e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}
