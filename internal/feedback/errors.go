package feedback

import "fmt"

// EvaluationError represents a failure to produce content feedback: the
// provider returned no content, or the content failed JSON or schema
// validation. Fatal to the evaluation; no partial result is returned.
type EvaluationError struct {
	Message string
	Cause   error
}

func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("answer evaluation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("answer evaluation failed: %s", e.Message)
}

func (e *EvaluationError) Unwrap() error {
	return e.Cause
}
