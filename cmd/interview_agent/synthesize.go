package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/logging"
	"github.com/jonathan/interview-coach/internal/media"
	"github.com/jonathan/interview-coach/internal/speech"
)

var (
	synthesizeText string
	synthesizeOut  string
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Render text as a WAV file",
	Long:  `Synthesize speech for the given text and write the result as a WAV file.`,
	RunE:  runSynthesize,
}

func init() {
	synthesizeCmd.Flags().StringVar(&synthesizeText, "text", "", "Text to synthesize (required)")
	synthesizeCmd.Flags().StringVarP(&synthesizeOut, "out", "o", "question.wav", "Output WAV path")

	synthesizeCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(synthesizeCmd)
}

func runSynthesize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	logger, err := logging.New(cfg.LogPretty, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	tts := speech.NewGeminiTTS(speech.TTSConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.TTSModel,
		Voice:  cfg.TTSVoice,
	}, logger.Named("tts"))

	svc := speech.NewService(tts, speech.ServiceConfig{
		MaxAttempts: cfg.TTSMaxAttempts,
		Format: speech.PCMFormat{
			Channels:      1,
			SampleRate:    cfg.TTSSampleRate,
			BitsPerSample: 16,
		},
	}, logger.Named("speech"))

	audio, err := svc.Speak(cmd.Context(), synthesizeText)
	if err != nil {
		return err
	}

	mimeType, data, err := media.ParseDataURI(audio.AudioDataURI)
	if err != nil {
		return fmt.Errorf("unexpected synthesis payload: %w", err)
	}
	if mimeType != "audio/wav" {
		return fmt.Errorf("unexpected synthesis MIME type %q", mimeType)
	}

	if err := os.WriteFile(synthesizeOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", synthesizeOut, err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %d bytes to %s\n", len(data), synthesizeOut)
	return nil
}
