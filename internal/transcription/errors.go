package transcription

import "fmt"

// TranscriptionError represents a failure to transcribe recorded audio.
// Non-fatal to the interview flow: the user retains the option to type.
type TranscriptionError struct {
	Message string
	Cause   error
}

func (e *TranscriptionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transcription failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}
