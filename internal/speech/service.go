// Package speech converts question text into playable audio. The provider
// returns raw headerless PCM; the service retries transient provider failures
// a bounded number of times, wraps the PCM in a WAV container, and returns the
// result as a base64 data URI.
package speech

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/jonathan/interview-coach/internal/media"
	"github.com/jonathan/interview-coach/internal/types"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// ServiceConfig tunes the retry policy and output format. Zero values fall
// back to the defaults: 3 attempts, 500ms constant delay, mono 24kHz 16-bit.
type ServiceConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
	Format      PCMFormat
}

// Service is the speech synthesis service.
type Service struct {
	synthesizer Synthesizer
	config      ServiceConfig
	logger      *zap.Logger
}

// NewService creates a speech Service wrapping the given synthesizer.
func NewService(synthesizer Synthesizer, config ServiceConfig, logger *zap.Logger) *Service {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaultMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = defaultRetryDelay
	}
	if config.Format == (PCMFormat{}) {
		config.Format = DefaultPCMFormat()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{synthesizer: synthesizer, config: config, logger: logger}
}

// Speak synthesizes text into a playable audio/wav data URI. Provider
// failures are retried up to MaxAttempts with a constant delay; exhausting
// the attempts raises *SynthesisError. Context cancellation is classified as
// permanent and stops the retry loop immediately.
func (s *Service) Speak(ctx context.Context, text string) (*types.SynthesizedAudio, error) {
	if text == "" {
		return nil, &SynthesisError{Attempts: 0, Cause: errors.New("text is empty")}
	}

	var pcm []byte
	attempts := 0

	operation := func() error {
		attempts++
		result, err := s.synthesizer.Synthesize(ctx, text)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return backoff.Permanent(err)
			}
			s.logger.Warn("speech synthesis attempt failed",
				zap.Int("attempt", attempts),
				zap.Error(err))
			return err
		}
		pcm = result
		return nil
	}

	policy := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(s.config.RetryDelay),
		uint64(s.config.MaxAttempts-1),
	)
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, &SynthesisError{Attempts: attempts, Cause: err}
	}

	wav, err := EncodeWAV(pcm, s.config.Format)
	if err != nil {
		return nil, &SynthesisError{Attempts: attempts, Cause: err}
	}

	return &types.SynthesizedAudio{
		AudioDataURI: media.FormatDataURI("audio/wav", wav),
	}, nil
}
