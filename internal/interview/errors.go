package interview

import "fmt"

// GenerationError reasons.
const (
	ReasonNoContent        = "no content"
	ReasonMalformedContent = "malformed content"
)

// GenerationError represents a failure to generate interview questions:
// the provider returned nothing, or returned content that failed JSON or
// schema validation. Fatal to the generation operation; not retried here.
type GenerationError struct {
	Reason string
	Cause  error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("question generation failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("question generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
