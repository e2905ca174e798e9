package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/feedback"
	"github.com/jonathan/interview-coach/internal/interview"
	"github.com/jonathan/interview-coach/internal/speech"
	"github.com/jonathan/interview-coach/internal/types"
)

type fakeGenerator struct {
	calls     int
	questions []types.Question
	err       error
}

func (f *fakeGenerator) Generate(_ context.Context, _ types.InterviewRequest) ([]types.Question, error) {
	f.calls++
	return f.questions, f.err
}

type fakeEvaluator struct {
	calls  int
	result *types.AnswerFeedbackResult
	err    error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, _ types.AnswerSubmission) (*types.AnswerFeedbackResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeAnalyzer struct {
	calls  int
	result *types.PronunciationFeedback
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _, _ string) (*types.PronunciationFeedback, error) {
	f.calls++
	return f.result, f.err
}

type fakeSynthesizer struct {
	calls int
	audio *types.SynthesizedAudio
	err   error
}

func (f *fakeSynthesizer) Speak(_ context.Context, _ string) (*types.SynthesizedAudio, error) {
	f.calls++
	return f.audio, f.err
}

type fakeTranscriber struct {
	calls      int
	lastLang   string
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _, languageCode string) (string, error) {
	f.calls++
	f.lastLang = languageCode
	return f.transcript, f.err
}

func newTestServer(t *testing.T, deps Dependencies) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	srv := New(Config{Port: 0, HandlerTimeout: 5 * time.Second}, deps)
	t.Cleanup(func() { srv.rateLimiter.Stop() })
	return srv
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Dependencies{})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListRoles(t *testing.T) {
	srv := newTestServer(t, Dependencies{})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Roles []struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Roles, 4)
}

func TestRoleTopics(t *testing.T) {
	srv := newTestServer(t, Dependencies{})

	t.Run("known role", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/roles/software-engineer/topics", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body RoleTopicsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "software-engineer", body.Role)
		assert.NotEmpty(t, body.Topics)
	})

	t.Run("unknown role", func(t *testing.T) {
		rec := doJSON(t, srv.Handler(), http.MethodGet, "/roles/astronaut/topics", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListLanguages(t *testing.T) {
	srv := newTestServer(t, Dependencies{})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/languages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "en-US")
	assert.Contains(t, rec.Body.String(), "cmn-CN")
}

func TestGenerateQuestions(t *testing.T) {
	validBody := map[string]any{
		"role":          "Software Engineer",
		"topics":        map[string]string{"Arrays": "Easy"},
		"questionCount": 1,
	}

	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{questions: []types.Question{{Text: "What is a heap?"}}}
		srv := newTestServer(t, Dependencies{Generator: gen})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/interviews/questions", validBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, gen.calls)

		var body types.GeneratedQuestions
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Questions, 1)
		assert.Equal(t, "What is a heap?", body.Questions[0].Text)
	})

	t.Run("malformed body", func(t *testing.T) {
		gen := &fakeGenerator{}
		srv := newTestServer(t, Dependencies{Generator: gen})

		req := httptest.NewRequest(http.MethodPost, "/interviews/questions", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, gen.calls)
	})

	t.Run("missing topics", func(t *testing.T) {
		gen := &fakeGenerator{}
		srv := newTestServer(t, Dependencies{Generator: gen})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/interviews/questions", map[string]any{
			"role":          "Software Engineer",
			"questionCount": 1,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, gen.calls)
	})

	t.Run("provider failure", func(t *testing.T) {
		gen := &fakeGenerator{err: &interview.GenerationError{Reason: interview.ReasonNoContent}}
		srv := newTestServer(t, Dependencies{Generator: gen})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/interviews/questions", validBody)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestAnswerFeedback(t *testing.T) {
	validBody := map[string]any{
		"jobRole":    "Software Engineer",
		"question":   "What is a heap?",
		"answerText": "A heap is a tree-shaped priority structure.",
	}

	t.Run("success", func(t *testing.T) {
		eval := &fakeEvaluator{result: &types.AnswerFeedbackResult{
			ContentFeedback: types.ContentFeedback{Feedback: "Solid answer.", OverallScore: 85},
		}}
		srv := newTestServer(t, Dependencies{Evaluator: eval})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/interviews/feedback", validBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, eval.calls)

		var body types.AnswerFeedbackResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 85, body.OverallScore)
		assert.Nil(t, body.PronunciationAnalysis)
	})

	t.Run("empty answer rejected before evaluation", func(t *testing.T) {
		eval := &fakeEvaluator{}
		srv := newTestServer(t, Dependencies{Evaluator: eval})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/interviews/feedback", map[string]any{
			"jobRole":    "Software Engineer",
			"question":   "What is a heap?",
			"answerText": "",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, eval.calls)
	})

	t.Run("evaluation failure", func(t *testing.T) {
		eval := &fakeEvaluator{err: &feedback.EvaluationError{Message: "no content"}}
		srv := newTestServer(t, Dependencies{Evaluator: eval})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/interviews/feedback", validBody)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestPronunciation(t *testing.T) {
	validBody := PronunciationRequest{
		AudioDataURI: "data:audio/webm;base64,aGVsbG8=",
		ExpectedText: "hello world",
	}

	t.Run("success", func(t *testing.T) {
		analyzer := &fakeAnalyzer{result: &types.PronunciationFeedback{
			OverallScore: 90,
			Transcript:   "hello world",
		}}
		srv := newTestServer(t, Dependencies{Pronunciation: analyzer})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/pronunciation", validBody)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, analyzer.calls)
	})

	t.Run("missing audio", func(t *testing.T) {
		analyzer := &fakeAnalyzer{}
		srv := newTestServer(t, Dependencies{Pronunciation: analyzer})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/pronunciation", PronunciationRequest{ExpectedText: "hello"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, analyzer.calls)
	})

	t.Run("not configured", func(t *testing.T) {
		srv := newTestServer(t, Dependencies{})
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/pronunciation", validBody)
		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})
}

func TestSynthesize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		synth := &fakeSynthesizer{audio: &types.SynthesizedAudio{AudioDataURI: "data:audio/wav;base64,UklGRg=="}}
		srv := newTestServer(t, Dependencies{Synthesizer: synth})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/speech/synthesize", SynthesizeRequest{Text: "What is a heap?"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, synth.calls)

		var body types.SynthesizedAudio
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.AudioDataURI, "data:audio/wav;base64,")
	})

	t.Run("empty text", func(t *testing.T) {
		synth := &fakeSynthesizer{}
		srv := newTestServer(t, Dependencies{Synthesizer: synth})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/speech/synthesize", SynthesizeRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, synth.calls)
	})

	t.Run("synthesis exhausted", func(t *testing.T) {
		synth := &fakeSynthesizer{err: &speech.SynthesisError{Attempts: 3, Cause: errors.New("no audio")}}
		srv := newTestServer(t, Dependencies{Synthesizer: synth})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/speech/synthesize", SynthesizeRequest{Text: "hi"})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestTranscribe(t *testing.T) {
	t.Run("defaults language", func(t *testing.T) {
		tr := &fakeTranscriber{transcript: "hello"}
		srv := newTestServer(t, Dependencies{Transcriber: tr})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/speech/transcribe", TranscribeRequest{
			AudioDataURI: "data:audio/webm;base64,aGVsbG8=",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "en-US", tr.lastLang)

		var body TranscribeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "hello", body.Transcript)
	})

	t.Run("explicit language", func(t *testing.T) {
		tr := &fakeTranscriber{transcript: "bonjour"}
		srv := newTestServer(t, Dependencies{Transcriber: tr})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/speech/transcribe", TranscribeRequest{
			AudioDataURI: "data:audio/webm;base64,aGVsbG8=",
			LanguageCode: "fr-FR",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "fr-FR", tr.lastLang)
	})

	t.Run("missing audio", func(t *testing.T) {
		tr := &fakeTranscriber{}
		srv := newTestServer(t, Dependencies{Transcriber: tr})

		rec := doJSON(t, srv.Handler(), http.MethodPost, "/speech/transcribe", TranscribeRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, tr.calls)
	})
}

func TestRateLimitHeaders(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "5")
	srv := New(Config{Port: 0, RequestsPerMin: 5, RateLimitBurst: 2}, Dependencies{})
	defer srv.rateLimiter.Stop()

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitExceeded(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	srv := New(Config{Port: 0, RequestsPerMin: 60, RateLimitBurst: 2}, Dependencies{
		Synthesizer: &fakeSynthesizer{audio: &types.SynthesizedAudio{AudioDataURI: "data:audio/wav;base64,UklGRg=="}},
	})
	defer srv.rateLimiter.Stop()

	// Burst capacity is 2 for synthesis; the third immediate request trips the limit.
	var last *httptest.ResponseRecorder
	for i := 0; i < 31; i++ {
		last = doJSON(t, srv.Handler(), http.MethodPost, "/speech/synthesize", SynthesizeRequest{Text: "hi"})
		if last.Code == http.StatusTooManyRequests {
			break
		}
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Contains(t, last.Body.String(), "rate_limit_exceeded")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, Dependencies{})
	req := httptest.NewRequest(http.MethodOptions, "/interviews/questions", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, Dependencies{})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
