// Package transcription converts recorded answers into plain text so the user
// does not have to type. The call is attempt-once and best effort: on failure
// the user can still type the answer manually.
package transcription

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/media"
	"github.com/jonathan/interview-coach/internal/prompts"
)

// DefaultLanguageCode is used when the caller does not specify a language.
const DefaultLanguageCode = "en-US"

// Service transcribes recorded audio.
type Service struct {
	client llm.Client
	logger *zap.Logger
}

// NewService creates a transcription Service backed by the given LLM client.
func NewService(client llm.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Transcribe returns the plain-text transcription of the audio data URI in
// the given BCP-47 language. Failures surface as *TranscriptionError.
func (s *Service) Transcribe(ctx context.Context, audioDataURI, languageCode string) (string, error) {
	if languageCode == "" {
		languageCode = DefaultLanguageCode
	}

	mimeType, audio, err := media.ParseDataURI(audioDataURI)
	if err != nil {
		return "", &TranscriptionError{Message: "invalid audio data URI", Cause: err}
	}

	template := prompts.MustGet("transcription.json", "transcribe-audio")
	prompt := prompts.Format(template, map[string]string{
		"LanguageCode": languageCode,
	})

	text, err := s.client.TranscribeAudio(ctx, prompt, mimeType, audio, llm.TierLite)
	if err != nil {
		return "", &TranscriptionError{Message: "provider call failed", Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &TranscriptionError{Message: "provider returned empty transcript"}
	}

	s.logger.Debug("transcription complete",
		zap.String("language", languageCode),
		zap.Int("chars", len(text)))

	return text, nil
}
