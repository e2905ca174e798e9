// Package server provides the HTTP REST API for the interview coach.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/interview-coach/internal/server/ratelimit"
	"github.com/jonathan/interview-coach/internal/types"
)

// QuestionGenerator produces interview questions from a role/topic selection.
type QuestionGenerator interface {
	Generate(ctx context.Context, req types.InterviewRequest) ([]types.Question, error)
}

// AnswerEvaluator produces the merged content-plus-pronunciation feedback for
// a submitted answer.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, submission types.AnswerSubmission) (*types.AnswerFeedbackResult, error)
}

// PronunciationAnalyzer scores recorded audio against an expected text.
type PronunciationAnalyzer interface {
	Analyze(ctx context.Context, audioDataURI, expectedText string) (*types.PronunciationFeedback, error)
}

// SpeechSynthesizer renders text as playable audio.
type SpeechSynthesizer interface {
	Speak(ctx context.Context, text string) (*types.SynthesizedAudio, error)
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioDataURI, languageCode string) (string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	generator      QuestionGenerator
	evaluator      AnswerEvaluator
	pronunciation  PronunciationAnalyzer
	synthesizer    SpeechSynthesizer
	transcriber    Transcriber
	rateLimiter    *ratelimit.Limiter
	handlerTimeout time.Duration
}

// Config holds server configuration
type Config struct {
	Port           int
	RequestsPerMin int
	RateLimitBurst int
	HandlerTimeout time.Duration
}

// Dependencies holds the services the server dispatches to. All fields are
// required except Pronunciation: a nil analyzer disables the standalone
// pronunciation endpoint.
type Dependencies struct {
	Generator     QuestionGenerator
	Evaluator     AnswerEvaluator
	Pronunciation PronunciationAnalyzer
	Synthesizer   SpeechSynthesizer
	Transcriber   Transcriber
}

// New creates a new server instance
func New(cfg Config, deps Dependencies) *Server {
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 60 * time.Second
	}

	s := &Server{
		generator:      deps.Generator,
		evaluator:      deps.Evaluator,
		pronunciation:  deps.Pronunciation,
		synthesizer:    deps.Synthesizer,
		transcriber:    deps.Transcriber,
		handlerTimeout: cfg.HandlerTimeout,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.RequestsPerMin, cfg.RateLimitBurst))

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Catalog endpoints
	mux.HandleFunc("GET /roles", s.handleListRoles)
	mux.HandleFunc("GET /roles/{slug}/topics", s.handleRoleTopics)
	mux.HandleFunc("GET /languages", s.handleListLanguages)

	// Interview endpoints
	mux.HandleFunc("POST /interviews/questions", s.handleGenerateQuestions)
	mux.HandleFunc("POST /interviews/feedback", s.handleAnswerFeedback)
	mux.HandleFunc("POST /pronunciation", s.handlePronunciation)

	// Speech endpoints
	mux.HandleFunc("POST /speech/synthesize", s.handleSynthesize)
	mux.HandleFunc("POST /speech/transcribe", s.handleTranscribe)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.HandlerTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		// Check rate limit
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		// Set rate limit headers for successful requests
		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a per-request correlation ID.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)
		log.Printf("[%s] %s %s %s", r.Method, r.URL.Path, r.RemoteAddr, requestID)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", r.Method, r.URL.Path, requestID, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	// Log rate limit hit
	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
