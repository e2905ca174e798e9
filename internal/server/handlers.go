package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/interview-coach/internal/catalog"
	"github.com/jonathan/interview-coach/internal/transcription"
	"github.com/jonathan/interview-coach/internal/types"
)

// PronunciationRequest represents the request body for /pronunciation
type PronunciationRequest struct {
	AudioDataURI string `json:"audioDataUri"`
	ExpectedText string `json:"expectedText"`
}

// SynthesizeRequest represents the request body for /speech/synthesize
type SynthesizeRequest struct {
	Text string `json:"text"`
}

// TranscribeRequest represents the request body for /speech/transcribe
type TranscribeRequest struct {
	AudioDataURI string `json:"audioDataUri"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// TranscribeResponse represents the response for /speech/transcribe
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

// RoleTopicsResponse represents the response for /roles/{slug}/topics
type RoleTopicsResponse struct {
	Role   string              `json:"role"`
	Topics map[string][]string `json:"topics"`
}

// requestContext bounds a handler's downstream work.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.handlerTimeout)
}

// handleListRoles returns the selectable interview roles
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"roles": catalog.Roles()})
}

// handleRoleTopics returns the topic groups for one role
func (s *Server) handleRoleTopics(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	topics, ok := catalog.TopicsForRole(slug)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown role: "+slug)
		return
	}
	s.jsonResponse(w, http.StatusOK, RoleTopicsResponse{Role: slug, Topics: topics})
}

// handleListLanguages returns the languages supported for transcription
func (s *Server) handleListLanguages(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"languages": catalog.Languages()})
}

// handleGenerateQuestions generates a question set for a role/topic selection
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	questions, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.Printf("Question generation failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.GeneratedQuestions{Questions: questions})
}

// handleAnswerFeedback evaluates a submitted answer
func (s *Server) handleAnswerFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Reject before any provider call; Evaluate would also catch this but
	// an empty answer is a client error, not a provider failure.
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	result, err := s.evaluator.Evaluate(ctx, req)
	if err != nil {
		log.Printf("Answer evaluation failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handlePronunciation scores recorded audio against an expected text
func (s *Server) handlePronunciation(w http.ResponseWriter, r *http.Request) {
	if s.pronunciation == nil {
		s.errorResponse(w, http.StatusNotImplemented, "Pronunciation analysis is not configured")
		return
	}

	var req PronunciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.AudioDataURI == "" {
		s.errorResponse(w, http.StatusBadRequest, "audioDataUri is required")
		return
	}
	if req.ExpectedText == "" {
		s.errorResponse(w, http.StatusBadRequest, "expectedText is required")
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	result, err := s.pronunciation.Analyze(ctx, req.AudioDataURI, req.ExpectedText)
	if err != nil {
		log.Printf("Pronunciation analysis failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleSynthesize renders question text as playable audio
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	audio, err := s.synthesizer.Speak(ctx, req.Text)
	if err != nil {
		log.Printf("Speech synthesis failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, audio)
}

// handleTranscribe converts recorded audio into text
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.AudioDataURI == "" {
		s.errorResponse(w, http.StatusBadRequest, "audioDataUri is required")
		return
	}
	if req.LanguageCode == "" {
		req.LanguageCode = transcription.DefaultLanguageCode
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	transcript, err := s.transcriber.Transcribe(ctx, req.AudioDataURI, req.LanguageCode)
	if err != nil {
		log.Printf("Transcription failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, TranscribeResponse{Transcript: transcript})
}
