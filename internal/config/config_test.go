package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, s.ActiveProvider())
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", s.ActiveEndpoint())
	assert.Equal(t, "gpt-4o-mini", s.ActiveModel())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".commentgen", "config.json")

	s := &Settings{
		Provider: ProviderClaude,
		APIKey:   "sk-ant-test",
		Model:    "claude-3-5-sonnet-20241022",
	}
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, loaded.Provider)
	assert.Equal(t, "sk-ant-test", loaded.APIKey)
	assert.Equal(t, "https://api.anthropic.com/v1/messages", loaded.ActiveEndpoint())
}

func TestClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := &Settings{Provider: ProviderGemini, APIKey: "k"}
	require.NoError(t, s.Save(path))

	require.NoError(t, Clear(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is a no-op.
	require.NoError(t, Clear(path))
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyPreset(t *testing.T) {
	s := &Settings{Provider: ProviderOpenAI, Endpoint: "http://old", Model: "old"}
	s.ApplyPreset(ProviderGemini)
	assert.Equal(t, ProviderGemini, s.Provider)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", s.Endpoint)
	assert.Equal(t, "gemini-2.0-flash", s.Model)

	s.ApplyPreset(ProviderCustom)
	assert.Empty(t, s.Endpoint)
	assert.Empty(t, s.Model)
}

func TestPromptConfigDefaults(t *testing.T) {
	s := &Settings{}
	pc := s.GetPromptConfig()
	assert.Equal(t, 400, pc.MinChars)
	assert.Equal(t, 500, pc.MaxChars)
	assert.InDelta(t, 0.4, pc.Temperature, 1e-9)

	s.Prompt = &PromptConfig{MinChars: 500, MaxChars: 800}
	pc = s.GetPromptConfig()
	assert.Equal(t, 500, pc.MinChars)
	assert.Equal(t, 800, pc.MaxChars)
	assert.InDelta(t, 0.4, pc.Temperature, 1e-9)
}
