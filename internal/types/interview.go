// Package types provides type definitions for the request/response shapes used
// throughout the interview-coach system. Every entity here is request-scoped;
// nothing is persisted or shared across requests.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Difficulty is the level assigned to a selected topic.
type Difficulty string

// Difficulty levels selectable per topic.
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// InterviewRequest describes one interview to generate: a role, the selected
// topics with their difficulty, and how many questions to produce.
// The generator trusts questionCount; the UI is responsible for keeping it
// within the number of selectable topics.
type InterviewRequest struct {
	Role          string                `json:"role" validate:"required,min=1"`
	Topics        map[string]Difficulty `json:"topics" validate:"required,min=1,dive,oneof=Easy Medium Hard"`
	QuestionCount int                   `json:"questionCount" validate:"required,min=1"`
}

// Question is a single generated interview question. RequiresTyping is true
// only for Hard questions that explicitly ask for written code or an algorithm.
type Question struct {
	Text           string `json:"question"`
	RequiresTyping bool   `json:"requiresTyping"`
}

// GeneratedQuestions is the generator's response envelope.
type GeneratedQuestions struct {
	Questions []Question `json:"questions"`
}

// AnswerSubmission is what the UI sends when the user submits an answer.
// AudioDataURI is present only when the answer was spoken; it uses the
// data:<mimetype>;base64,<payload> convention.
type AnswerSubmission struct {
	JobRole      string `json:"jobRole" validate:"required,min=1"`
	Question     string `json:"question" validate:"required,min=1"`
	AnswerText   string `json:"answerText" validate:"required,min=1"`
	AudioDataURI string `json:"audioDataUri,omitempty"`
}

// ContentFeedback is the mandatory half of an answer evaluation. All six
// fields are required in a successful provider response.
type ContentFeedback struct {
	Feedback         string `json:"feedback"`
	Strengths        string `json:"strengths"`
	Weaknesses       string `json:"weaknesses"`
	OverallScore     int    `json:"overallScore"`
	AnswerStructure  string `json:"answerStructure"`
	LanguageAnalysis string `json:"languageAnalysis"`
}

// WordFeedback is the correctness judgment for one word of the expected text.
type WordFeedback struct {
	Word      string `json:"word"`
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback,omitempty"`
}

// PronunciationFeedback is the optional half of an answer evaluation,
// produced only when audio was submitted and the pronunciation call succeeded.
// WordLevelFeedback covers every word of the expected text, in order.
type PronunciationFeedback struct {
	OverallScore      int            `json:"overallScore"`
	Transcript        string         `json:"transcript"`
	WordLevelFeedback []WordFeedback `json:"wordLevelFeedback"`
	GeneralFeedback   string         `json:"generalFeedback"`
}

// AnswerFeedbackResult is the merged evaluation returned to the UI.
// PronunciationAnalysis is nil whenever no audio was supplied or the
// pronunciation call failed; that is a degraded success, not an error.
type AnswerFeedbackResult struct {
	ContentFeedback
	PronunciationAnalysis *PronunciationFeedback `json:"pronunciationAnalysis,omitempty"`
}

// SynthesizedAudio is a playable rendering of a question, regenerated per
// question and never cached.
type SynthesizedAudio struct {
	AudioDataURI string `json:"audioDataUri"`
}

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnswerSubmission using the validator.
func (s *AnswerSubmission) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// HasAudio reports whether the submission carries a recorded answer.
// Audio being present is the sole gate for attempting pronunciation scoring.
func (s *AnswerSubmission) HasAudio() bool {
	return s.AudioDataURI != ""
}
