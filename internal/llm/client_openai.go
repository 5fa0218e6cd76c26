package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"commentgen/internal/logging"
)

// OpenAIClient implements Client for the OpenAI chat-completions wire shape.
// Custom endpoints (self-hosted servers, proxies) use the same shape, so the
// custom provider is served by this client too.
type OpenAIClient struct {
	apiKey      string
	endpoint    string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIClient creates a client for an OpenAI-compatible endpoint.
func NewOpenAIClient(apiKey, endpoint, model string, temperature float64) *OpenAIClient {
	return &OpenAIClient{
		apiKey:      apiKey,
		endpoint:    endpoint,
		model:       model,
		temperature: temperature,
		httpClient:  newHTTPClient(),
	}
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt and returns the first choice's message content.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	ctx, cancel := ensureDeadline(ctx, c.httpClient.Timeout)
	defer cancel()

	startTime := time.Now()
	logging.APIDebug("[OpenAI] Generate: model=%s prompt_len=%d", c.model, len(prompt))

	reqBody := openAIRequest{
		Model:       c.model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[OpenAI] Generate: request failed: %v", err)
		return "", &CallError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.APIError("[OpenAI] Generate: API returned status %d", resp.StatusCode)
		return "", callErrorFromBody(resp.StatusCode, body)
	}

	var oaResp openAIResponse
	if err := json.Unmarshal(body, &oaResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(oaResp.Choices) == 0 || strings.TrimSpace(oaResp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(oaResp.Choices[0].Message.Content)
	logging.APIDebug("[OpenAI] Generate: completed in %v response_len=%d", time.Since(startTime), len(text))
	return text, nil
}

func (c *OpenAIClient) validate() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return &ConfigError{Missing: "api key"}
	}
	if strings.TrimSpace(c.endpoint) == "" {
		return &ConfigError{Missing: "endpoint"}
	}
	if strings.TrimSpace(c.model) == "" {
		return &ConfigError{Missing: "model"}
	}
	return nil
}
