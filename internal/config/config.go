// Package config handles platform configuration
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Answer provider identifiers.
const (
	ProviderOllama     = "ollama"
	ProviderOpenRouter = "openrouter"
)

// Config holds all configuration for the platform, sourced from the
// environment.
type Config struct {
	// Server
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8000"`

	// Transcription backend
	WhisperURL  string `envconfig:"WHISPER_URL" default:"http://localhost:9090"`
	STTDevice   string `envconfig:"STT_DEVICE" default:"cuda"`  // cuda or cpu
	STTModel    string `envconfig:"STT_MODEL" default:"base.en"` // tiny.en, base.en, small.en, medium.en
	STTLanguage string `envconfig:"STT_LANGUAGE" default:"en"`
	BeamSize    int    `envconfig:"STT_BEAM_SIZE" default:"5"`

	// Audio pipeline
	BufferDuration       float64  `envconfig:"BUFFER_DURATION" default:"5"` // seconds per segment
	SegmentQueueSize     int      `envconfig:"SEGMENT_QUEUE_SIZE" default:"64"`
	ExcludedAudioDevices []string `envconfig:"EXCLUDED_AUDIO_DEVICES"`

	// Orchestrator
	PollIntervalMS   int `envconfig:"POLL_INTERVAL_MS" default:"500"`
	ContextWindow    int `envconfig:"CONTEXT_WINDOW" default:"5"`
	HistorySize      int `envconfig:"HISTORY_SIZE" default:"10"`
	MinQuestionWords int `envconfig:"MIN_QUESTION_WORDS" default:"5"`

	// Answer backend
	LLMProvider      string `envconfig:"LLM_PROVIDER" default:"ollama"`
	OllamaBaseURL    string `envconfig:"OLLAMA_BASE_URL" default:"http://localhost:11434"`
	OllamaModel      string `envconfig:"OLLAMA_MODEL" default:"llama3.1"`
	OpenRouterAPIKey string `envconfig:"OPENROUTER_API_KEY"`
	OpenRouterModel  string `envconfig:"OPENROUTER_MODEL" default:"meta-llama/llama-3.1-8b-instruct:free"`

	// Interview profile
	Company    string `envconfig:"COMPANY"`
	Position   string `envconfig:"POSITION"`
	ProfileDir string `envconfig:"PROFILE_DIR" default:"database"`

	// Observability
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"` // debug, info, warn, error
	LogFile        string `envconfig:"LOG_FILE"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no safe default.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOllama, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown LLM provider %q (want %s or %s)", c.LLMProvider, ProviderOllama, ProviderOpenRouter)
	}
	if c.BufferDuration <= 0 {
		return fmt.Errorf("BUFFER_DURATION must be positive, got %v", c.BufferDuration)
	}
	if c.SegmentQueueSize < 1 {
		return fmt.Errorf("SEGMENT_QUEUE_SIZE must be at least 1, got %d", c.SegmentQueueSize)
	}
	return nil
}
