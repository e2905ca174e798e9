// Package interview provides the question generator: it turns a role, a set of
// topics with difficulties, and a question count into a list of interview
// questions via a structured LLM call.
package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/prompts"
	"github.com/jonathan/interview-coach/internal/schemas"
	"github.com/jonathan/interview-coach/internal/types"
)

// Generator produces interview questions for an InterviewRequest.
type Generator struct {
	client llm.Client
	logger *zap.Logger
}

// NewGenerator creates a Generator backed by the given LLM client.
func NewGenerator(client llm.Client, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger}
}

// Generate asks the LLM for exactly req.QuestionCount questions distributed
// across the selected topics. The provider is instructed to honor the count
// but may not; a mismatched count is passed through rather than treated as
// an error. Parse or schema failures are fatal and surface as *GenerationError.
func (g *Generator) Generate(ctx context.Context, req types.InterviewRequest) ([]types.Question, error) {
	prompt := buildQuestionPrompt(req)

	responseText, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Reason: ReasonNoContent, Cause: err}
	}
	if strings.TrimSpace(responseText) == "" {
		return nil, &GenerationError{Reason: ReasonNoContent}
	}

	if err := schemas.Validate(schemas.GeneratedQuestions, responseText); err != nil {
		return nil, &GenerationError{Reason: ReasonMalformedContent, Cause: err}
	}

	var generated types.GeneratedQuestions
	if err := json.Unmarshal([]byte(responseText), &generated); err != nil {
		return nil, &GenerationError{Reason: ReasonMalformedContent, Cause: err}
	}

	if len(generated.Questions) != req.QuestionCount {
		g.logger.Warn("provider returned unexpected question count",
			zap.Int("requested", req.QuestionCount),
			zap.Int("returned", len(generated.Questions)))
	}

	return generated.Questions, nil
}

// buildQuestionPrompt enumerates each topic with its difficulty in a stable
// order so identical requests produce identical prompts.
func buildQuestionPrompt(req types.InterviewRequest) string {
	names := make([]string, 0, len(req.Topics))
	for name := range req.Topics {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("- Topic: %s, Difficulty: %s\n", name, req.Topics[name]))
	}

	template := prompts.MustGet("interview.json", "generate-questions")
	return prompts.Format(template, map[string]string{
		"Role":          req.Role,
		"Topics":        strings.TrimRight(sb.String(), "\n"),
		"QuestionCount": strconv.Itoa(req.QuestionCount),
	})
}
