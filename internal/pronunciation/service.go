// Package pronunciation scores a spoken recording against the text the user
// was expected to say, word by word. The judgment is made by a multimodal LLM
// that receives the raw audio, so it reflects the actual signal rather than a
// text-similarity comparison.
package pronunciation

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/media"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
)

// Service analyzes pronunciation from recorded audio.
type Service struct {
	client llm.Client
	logger *zap.Logger
}

// NewService creates a pronunciation Service backed by the given LLM client.
func NewService(client llm.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// Analyze transcribes the audio, aligns the transcript against expectedText,
// and returns a per-word correctness judgment, a 0-100 score, and coaching
// tips. Words the user skipped are marked incorrect; inserted words are folded
// into the score but not listed. Any failure surfaces as *PronunciationError;
// callers treat it as non-fatal.
func (s *Service) Analyze(ctx context.Context, audioDataURI, expectedText string) (*types.PronunciationFeedback, error) {
	if strings.TrimSpace(expectedText) == "" {
		return nil, &PronunciationError{Message: "expected text is empty"}
	}

	mimeType, audio, err := media.ParseDataURI(audioDataURI)
	if err != nil {
		return nil, &PronunciationError{Message: "invalid audio data URI", Cause: err}
	}

	template := prompts.MustGet("pronunciation.json", "analyze-pronunciation")
	prompt := prompts.Format(template, map[string]string{
		"ExpectedText": expectedText,
	})

	responseText, err := s.client.GenerateJSONWithAudio(ctx, prompt, mimeType, audio, llm.TierAdvanced)
	if err != nil {
		return nil, &PronunciationError{Message: "provider call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.PronunciationFeedback, responseText); err != nil {
		return nil, &PronunciationError{Message: "response failed validation", Cause: err}
	}

	var feedback types.PronunciationFeedback
	if err := json.Unmarshal([]byte(responseText), &feedback); err != nil {
		return nil, &PronunciationError{Message: "response is not valid JSON", Cause: err}
	}

	s.logger.Debug("pronunciation analysis complete",
		zap.Int("score", feedback.OverallScore),
		zap.Int("words", len(feedback.WordLevelFeedback)))

	return &feedback, nil
}
