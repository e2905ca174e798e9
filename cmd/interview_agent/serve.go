package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/feedback"
	"github.com/jonathan/interview-coach/internal/interview"
	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/logging"
	"github.com/jonathan/interview-coach/internal/pronunciation"
	"github.com/jonathan/interview-coach/internal/server"
	"github.com/jonathan/interview-coach/internal/speech"
	"github.com/jonathan/interview-coach/internal/transcription"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for question generation, answer feedback, pronunciation scoring, and speech.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	logger, err := logging.New(cfg.LogPretty, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	client, err := llm.NewClient(cmd.Context(), nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	srv := server.New(server.Config{
		Port:           cfg.Port,
		RequestsPerMin: cfg.RequestsPerMin,
		RateLimitBurst: cfg.RateLimitBurst,
		HandlerTimeout: time.Duration(cfg.HandlerTimeoutS) * time.Second,
	}, buildDependencies(cfg, client, logger))

	return srv.Start()
}

// buildDependencies wires the LLM client into each service behind the API.
func buildDependencies(cfg config.Config, client llm.Client, logger *zap.Logger) server.Dependencies {
	analyzer := pronunciation.NewService(client, logger.Named("pronunciation"))

	tts := speech.NewGeminiTTS(speech.TTSConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.TTSModel,
		Voice:  cfg.TTSVoice,
	}, logger.Named("tts"))

	speechSvc := speech.NewService(tts, speech.ServiceConfig{
		MaxAttempts: cfg.TTSMaxAttempts,
		Format: speech.PCMFormat{
			Channels:      1,
			SampleRate:    cfg.TTSSampleRate,
			BitsPerSample: 16,
		},
	}, logger.Named("speech"))

	return server.Dependencies{
		Generator:     interview.NewGenerator(client, logger.Named("interview")),
		Evaluator:     feedback.NewOrchestrator(client, analyzer, logger.Named("feedback")),
		Pronunciation: analyzer,
		Synthesizer:   speechSvc,
		Transcriber:   transcription.NewService(client, logger.Named("transcription")),
	}
}
