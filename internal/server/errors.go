// Package server provides the HTTP REST API for the interview coach.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-coach/internal/feedback"
	"github.com/jonathan/interview-coach/internal/interview"
	"github.com/jonathan/interview-coach/internal/pronunciation"
	"github.com/jonathan/interview-coach/internal/speech"
	"github.com/jonathan/interview-coach/internal/transcription"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	// Provider-side failures surface as bad gateway: the request was valid
	// but the model did not produce a usable result.
	var genErr *interview.GenerationError
	var evalErr *feedback.EvaluationError
	var pronErr *pronunciation.PronunciationError
	var synthErr *speech.SynthesisError
	var transErr *transcription.TranscriptionError
	switch {
	case errors.As(err, &genErr),
		errors.As(err, &evalErr),
		errors.As(err, &pronErr),
		errors.As(err, &synthErr),
		errors.As(err, &transErr):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
