package speech

import "fmt"

// SynthesisError is raised only after every synthesis attempt has been
// exhausted. Fatal to the "play question aloud" feature; the question text
// remains usable without audio.
type SynthesisError struct {
	Attempts int
	Cause    error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("speech synthesis failed after %d attempts: %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("speech synthesis failed after %d attempts", e.Attempts)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}
