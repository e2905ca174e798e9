package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Synthesizer converts text into raw headerless PCM audio. Implementations
// are single-attempt; retry policy lives in Service.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// TTSConfig configures the Gemini text-to-speech client.
type TTSConfig struct {
	APIKey  string
	Model   string
	Voice   string
	BaseURL string
}

const (
	defaultTTSModel   = "gemini-2.5-flash-preview-tts"
	defaultTTSVoice   = "Algenib"
	defaultTTSBaseURL = "https://generativelanguage.googleapis.com"
)

// GeminiTTS calls the Gemini generateContent REST endpoint with the audio
// response modality. The generative-ai-go SDK has no audio output support,
// so this one call goes over plain HTTP.
type GeminiTTS struct {
	client *http.Client
	config TTSConfig
	logger *zap.Logger
}

// NewGeminiTTS creates a Gemini TTS client. Zero-value config fields fall
// back to provider defaults.
func NewGeminiTTS(config TTSConfig, logger *zap.Logger) *GeminiTTS {
	if config.Model == "" {
		config.Model = defaultTTSModel
	}
	if config.Voice == "" {
		config.Voice = defaultTTSVoice
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultTTSBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiTTS{
		client: &http.Client{},
		config: config,
		logger: logger,
	}
}

type ttsRequest struct {
	Contents         []ttsContent        `json:"contents"`
	GenerationConfig ttsGenerationConfig `json:"generationConfig"`
}

type ttsContent struct {
	Parts []ttsPart `json:"parts"`
}

type ttsPart struct {
	Text string `json:"text"`
}

type ttsGenerationConfig struct {
	ResponseModalities []string        `json:"responseModalities"`
	SpeechConfig       ttsSpeechConfig `json:"speechConfig"`
}

type ttsSpeechConfig struct {
	VoiceConfig ttsVoiceConfig `json:"voiceConfig"`
}

type ttsVoiceConfig struct {
	PrebuiltVoiceConfig ttsPrebuiltVoice `json:"prebuiltVoiceConfig"`
}

type ttsPrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type ttsResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData struct {
					MIMEType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Synthesize sends one REST request to the TTS model and returns the decoded
// raw PCM payload.
func (g *GeminiTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload := ttsRequest{
		Contents: []ttsContent{{Parts: []ttsPart{{Text: text}}}},
		GenerationConfig: ttsGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: ttsSpeechConfig{
				VoiceConfig: ttsVoiceConfig{
					PrebuiltVoiceConfig: ttsPrebuiltVoice{VoiceName: g.config.Voice},
				},
			},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TTS request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.config.BaseURL, g.config.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.config.APIKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send TTS request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var ttsResp ttsResponse
	if err := json.Unmarshal(body, &ttsResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal TTS response: %w", err)
	}

	if len(ttsResp.Candidates) == 0 || len(ttsResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no audio data in TTS response")
	}

	inline := ttsResp.Candidates[0].Content.Parts[0].InlineData
	if inline.Data == "" {
		return nil, fmt.Errorf("no audio data in TTS response")
	}

	pcm, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TTS audio payload: %w", err)
	}

	g.logger.Debug("synthesized speech",
		zap.String("model", g.config.Model),
		zap.String("mimeType", inline.MIMEType),
		zap.Int("pcmBytes", len(pcm)))

	return pcm, nil
}
