package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q, want :8000", cfg.HTTPAddr)
	}
	if cfg.BufferDuration != 5 {
		t.Errorf("BufferDuration = %v, want 5", cfg.BufferDuration)
	}
	if cfg.LLMProvider != ProviderOllama {
		t.Errorf("LLMProvider = %q, want ollama", cfg.LLMProvider)
	}
	if cfg.ContextWindow != 5 || cfg.HistorySize != 10 {
		t.Errorf("window/history = %d/%d, want 5/10", cfg.ContextWindow, cfg.HistorySize)
	}
	if cfg.PollIntervalMS != 500 {
		t.Errorf("PollIntervalMS = %d, want 500", cfg.PollIntervalMS)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openrouter")
	t.Setenv("BUFFER_DURATION", "3")
	t.Setenv("EXCLUDED_AUDIO_DEVICES", "teams,iphone")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLMProvider != ProviderOpenRouter {
		t.Errorf("LLMProvider = %q, want openrouter", cfg.LLMProvider)
	}
	if cfg.BufferDuration != 3 {
		t.Errorf("BufferDuration = %v, want 3", cfg.BufferDuration)
	}
	if len(cfg.ExcludedAudioDevices) != 2 || cfg.ExcludedAudioDevices[0] != "teams" {
		t.Errorf("ExcludedAudioDevices = %v", cfg.ExcludedAudioDevices)
	}
}

func TestValidateUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gpt4all")

	if _, err := Load(); err == nil {
		t.Error("unknown provider should fail at load time")
	}
}

func TestValidateBadDuration(t *testing.T) {
	cfg := &Config{LLMProvider: ProviderOllama, BufferDuration: 0, SegmentQueueSize: 64}
	if err := cfg.Validate(); err == nil {
		t.Error("zero buffer duration should be rejected")
	}
}
