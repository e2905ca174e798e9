package pronunciation

import "fmt"

// PronunciationError represents any failure while scoring pronunciation.
// It is non-fatal to the surrounding evaluation: callers proceed without
// pronunciation data.
type PronunciationError struct {
	Message string
	Cause   error
}

func (e *PronunciationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pronunciation analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pronunciation analysis failed: %s", e.Message)
}

func (e *PronunciationError) Unwrap() error {
	return e.Cause
}
