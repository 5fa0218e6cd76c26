package llm

import (
	"fmt"

	"commentgen/internal/config"
)

// New creates a client for the settings' active provider. Dispatch is by
// provider tag; custom endpoints speak the OpenAI wire shape.
func New(settings *config.Settings) (Client, error) {
	key := settings.ActiveAPIKey()
	endpoint := settings.ActiveEndpoint()
	model := settings.ActiveModel()
	temperature := settings.GetPromptConfig().Temperature

	switch settings.ActiveProvider() {
	case config.ProviderOpenAI, config.ProviderCustom:
		return NewOpenAIClient(key, endpoint, model, temperature), nil
	case config.ProviderClaude:
		return NewClaudeClient(key, endpoint, model), nil
	case config.ProviderGemini:
		return NewGeminiClient(key, endpoint, model, temperature), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", settings.ActiveProvider())
	}
}
