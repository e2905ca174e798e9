// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the service configuration that can be loaded from a JSON
// file or the environment. All fields are optional; missing values use
// defaults or must be provided via CLI flags.
type Config struct {
	// Provider
	APIKey string `json:"api_key,omitempty"` // Gemini API key

	// Server
	Port            int `json:"port,omitempty"`              // HTTP listen port
	RequestsPerMin  int `json:"requests_per_min,omitempty"`  // Rate limit per client
	RateLimitBurst  int `json:"rate_limit_burst,omitempty"`  // Rate limit burst size
	HandlerTimeoutS int `json:"handler_timeout_s,omitempty"` // Per-request timeout in seconds

	// Speech synthesis
	TTSVoice       string `json:"tts_voice,omitempty"`        // Prebuilt voice name
	TTSModel       string `json:"tts_model,omitempty"`        // Speech model identifier
	TTSSampleRate  int    `json:"tts_sample_rate,omitempty"`  // PCM sample rate in Hz
	TTSMaxAttempts int    `json:"tts_max_attempts,omitempty"` // Synthesis attempts before giving up

	// Logging
	LogLevel  string `json:"log_level,omitempty"`  // zap level name (debug, info, warn, error)
	LogPretty bool   `json:"log_pretty,omitempty"` // Human-readable console output
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:            8080,
		RequestsPerMin:  30,
		RateLimitBurst:  10,
		HandlerTimeoutS: 60,
		TTSVoice:        "Algenib",
		TTSModel:        "gemini-2.5-flash-preview-tts",
		TTSSampleRate:   24000,
		TTSMaxAttempts:  3,
		LogLevel:        "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave
// the corresponding field at its zero value so file and default values can
// fill it in later.
func FromEnv() Config {
	cfg := Config{
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		TTSVoice: os.Getenv("TTS_VOICE"),
		TTSModel: os.Getenv("TTS_MODEL"),
		LogLevel: os.Getenv("LOG_LEVEL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if pretty, err := strconv.ParseBool(os.Getenv("LOG_PRETTY")); err == nil {
		cfg.LogPretty = pretty
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RequestsPerMin < 0 {
		return fmt.Errorf("config error: 'requests_per_min' must be non-negative")
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit_burst' must be non-negative")
	}
	if c.HandlerTimeoutS < 0 {
		return fmt.Errorf("config error: 'handler_timeout_s' must be non-negative")
	}
	if c.TTSSampleRate < 0 {
		return fmt.Errorf("config error: 'tts_sample_rate' must be non-negative")
	}
	if c.TTSMaxAttempts < 0 {
		return fmt.Errorf("config error: 'tts_max_attempts' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. This is used to layer env and file values over Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.TTSVoice == "" {
		result.TTSVoice = defaults.TTSVoice
	}
	if result.TTSModel == "" {
		result.TTSModel = defaults.TTSModel
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RequestsPerMin == 0 {
		result.RequestsPerMin = defaults.RequestsPerMin
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}
	if result.HandlerTimeoutS == 0 {
		result.HandlerTimeoutS = defaults.HandlerTimeoutS
	}
	if result.TTSSampleRate == 0 {
		result.TTSSampleRate = defaults.TTSSampleRate
	}
	if result.TTSMaxAttempts == 0 {
		result.TTSMaxAttempts = defaults.TTSMaxAttempts
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
