// Package config holds all commentgen configuration from
// .commentgen/config.json. This is the single source of truth for provider
// settings and prompt tuning.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider identifies one of the supported LLM backends.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
	ProviderGemini Provider = "gemini"
	ProviderCustom Provider = "custom"
)

// Settings holds ALL commentgen configuration from .commentgen/config.json.
//
// Default endpoints and models by provider:
//   - openai: https://api.openai.com/v1/chat/completions, gpt-4o-mini
//   - claude: https://api.anthropic.com/v1/messages, claude-3-5-sonnet-20241022
//   - gemini: https://generativelanguage.googleapis.com/v1beta, gemini-2.0-flash
//   - custom: user-supplied endpoint and model
type Settings struct {
	// Provider selection (openai, claude, gemini, custom)
	Provider Provider `json:"provider,omitempty"`

	// API key, endpoint URL, and model name for the active provider.
	// Empty endpoint/model fall back to the provider preset.
	APIKey   string `json:"api_key,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Model    string `json:"model,omitempty"`

	// Prompt tuning
	Prompt *PromptConfig `json:"prompt,omitempty"`

	// Source encoding for CSV imports ("utf-8" or "euc-kr")
	ImportEncoding string `json:"import_encoding,omitempty"`

	// DebugMode enables file logging under .commentgen/logs/
	DebugMode bool `json:"debug_mode,omitempty"`
}

// PromptConfig carries the tunable constants of the prompt builder.
type PromptConfig struct {
	// Target character-length band for the generated comment, spaces included.
	MinChars int `json:"min_chars,omitempty"`
	MaxChars int `json:"max_chars,omitempty"`

	// Sampling temperature passed to the provider.
	Temperature float64 `json:"temperature,omitempty"`
}

// preset is a provider's default endpoint and model.
type preset struct {
	Endpoint string
	Model    string
}

var presets = map[Provider]preset{
	ProviderOpenAI: {"https://api.openai.com/v1/chat/completions", "gpt-4o-mini"},
	ProviderClaude: {"https://api.anthropic.com/v1/messages", "claude-3-5-sonnet-20241022"},
	ProviderGemini: {"https://generativelanguage.googleapis.com/v1beta", "gemini-2.0-flash"},
	ProviderCustom: {"", ""},
}

// ActiveEndpoint returns the configured endpoint, falling back to the
// provider preset when unset.
func (s *Settings) ActiveEndpoint() string {
	if ep := strings.TrimSpace(s.Endpoint); ep != "" {
		return ep
	}
	return presets[s.ActiveProvider()].Endpoint
}

// ActiveModel returns the configured model, falling back to the provider
// preset when unset.
func (s *Settings) ActiveModel() string {
	if m := strings.TrimSpace(s.Model); m != "" {
		return m
	}
	return presets[s.ActiveProvider()].Model
}

// ActiveProvider returns the configured provider, defaulting to openai.
func (s *Settings) ActiveProvider() Provider {
	if s.Provider == "" {
		return ProviderOpenAI
	}
	return s.Provider
}

// ActiveAPIKey returns the configured key, falling back to the conventional
// environment variable for the active provider.
func (s *Settings) ActiveAPIKey() string {
	if s.APIKey != "" {
		return s.APIKey
	}
	switch s.ActiveProvider() {
	case ProviderClaude:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderGemini:
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// GetPromptConfig returns the prompt config with defaults applied.
func (s *Settings) GetPromptConfig() PromptConfig {
	cfg := PromptConfig{MinChars: 400, MaxChars: 500, Temperature: 0.4}
	if s.Prompt != nil {
		if s.Prompt.MinChars > 0 {
			cfg.MinChars = s.Prompt.MinChars
		}
		if s.Prompt.MaxChars > 0 {
			cfg.MaxChars = s.Prompt.MaxChars
		}
		if s.Prompt.Temperature > 0 {
			cfg.Temperature = s.Prompt.Temperature
		}
	}
	return cfg
}

// ApplyPreset overwrites endpoint and model with the named provider's
// defaults, mirroring what the settings form does on provider switch.
func (s *Settings) ApplyPreset(p Provider) {
	s.Provider = p
	s.Endpoint = presets[p].Endpoint
	s.Model = presets[p].Model
}

// DefaultPath returns the default path to .commentgen/config.json under the
// user's home directory, or a workspace-relative path when home is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".commentgen", "config.json")
	}
	return filepath.Join(home, ".commentgen", "config.json")
}

// Load reads settings from path. A missing file is not an error: defaults
// are returned so a fresh install starts clean.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return s, nil
}

// Save writes settings to path, creating the directory if needed. Saving is
// always explicit; nothing writes the config file as a side effect.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Clear removes the config file. A missing file is a no-op.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	return nil
}
