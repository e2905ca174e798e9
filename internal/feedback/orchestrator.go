// Package feedback orchestrates answer evaluation: a mandatory content
// feedback call to the LLM and, when the answer was spoken, an optional
// pronunciation analysis. The two calls run concurrently and are joined with
// the content call as the fatal path and pronunciation as best effort.
package feedback

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
)

// PronunciationAnalyzer scores recorded audio against the text the user was
// expected to say.
type PronunciationAnalyzer interface {
	Analyze(ctx context.Context, audioDataURI, expectedText string) (*types.PronunciationFeedback, error)
}

// Orchestrator evaluates submitted answers.
type Orchestrator struct {
	client        llm.Client
	pronunciation PronunciationAnalyzer
	logger        *zap.Logger
}

// NewOrchestrator creates an Orchestrator. pronunciation may be nil, in which
// case audio submissions are evaluated for content only.
func NewOrchestrator(client llm.Client, pronunciation PronunciationAnalyzer, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{client: client, pronunciation: pronunciation, logger: logger}
}

// Evaluate produces the merged feedback for one answer submission.
// Exactly one content-feedback call is made; if audio is present, exactly one
// pronunciation call is made concurrently. A content failure aborts the whole
// evaluation as *EvaluationError; a pronunciation failure only drops the
// pronunciationAnalysis field.
func (o *Orchestrator) Evaluate(ctx context.Context, submission types.AnswerSubmission) (*types.AnswerFeedbackResult, error) {
	if err := submission.Validate(); err != nil {
		return nil, &EvaluationError{Message: "invalid submission", Cause: err}
	}

	var optional func(context.Context) (types.PronunciationFeedback, error)
	if submission.HasAudio() && o.pronunciation != nil {
		optional = func(ctx context.Context) (types.PronunciationFeedback, error) {
			feedback, err := o.pronunciation.Analyze(ctx, submission.AudioDataURI, submission.AnswerText)
			if err != nil {
				return types.PronunciationFeedback{}, err
			}
			return *feedback, nil
		}
	}

	joined, err := JoinMandatoryOptional(ctx,
		func(ctx context.Context) (types.ContentFeedback, error) {
			return o.contentFeedback(ctx, submission)
		},
		optional,
	)
	if err != nil {
		return nil, err
	}

	if joined.OptionalErr != nil {
		o.logger.Warn("pronunciation analysis unavailable, returning content feedback only",
			zap.Error(joined.OptionalErr))
	}

	return &types.AnswerFeedbackResult{
		ContentFeedback:       joined.Mandatory,
		PronunciationAnalysis: joined.Optional,
	}, nil
}

// contentFeedback runs the mandatory content evaluation call. The prompt
// instructs the model to judge content only; pronunciation is delegated to
// the separate analyzer.
func (o *Orchestrator) contentFeedback(ctx context.Context, submission types.AnswerSubmission) (types.ContentFeedback, error) {
	template := prompts.MustGet("feedback.json", "content-feedback")
	prompt := prompts.Format(template, map[string]string{
		"JobRole":    submission.JobRole,
		"Question":   submission.Question,
		"AnswerText": submission.AnswerText,
	})

	responseText, err := o.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return types.ContentFeedback{}, &EvaluationError{Message: "provider returned no content", Cause: err}
	}
	if strings.TrimSpace(responseText) == "" {
		return types.ContentFeedback{}, &EvaluationError{Message: "provider returned no content"}
	}

	if err := schemas.Validate(schemas.ContentFeedback, responseText); err != nil {
		return types.ContentFeedback{}, &EvaluationError{Message: "response failed validation", Cause: err}
	}

	var feedback types.ContentFeedback
	if err := json.Unmarshal([]byte(responseText), &feedback); err != nil {
		return types.ContentFeedback{}, &EvaluationError{Message: "response is not valid JSON", Cause: err}
	}

	return feedback, nil
}
