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

// ClaudeClient implements Client for the Anthropic messages wire shape.
type ClaudeClient struct {
	apiKey     string
	endpoint   string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClaudeClient creates a client for the Anthropic messages endpoint.
func NewClaudeClient(apiKey, endpoint, model string) *ClaudeClient {
	return &ClaudeClient{
		apiKey:     apiKey,
		endpoint:   endpoint,
		model:      model,
		maxTokens:  1024,
		httpClient: newHTTPClient(),
	}
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends the prompt and returns the first content block's text.
func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	ctx, cancel := ensureDeadline(ctx, c.httpClient.Timeout)
	defer cancel()

	startTime := time.Now()
	logging.APIDebug("[Claude] Generate: model=%s prompt_len=%d", c.model, len(prompt))

	reqBody := claudeRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
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
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[Claude] Generate: request failed: %v", err)
		return "", &CallError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.APIError("[Claude] Generate: API returned status %d", resp.StatusCode)
		return "", callErrorFromBody(resp.StatusCode, body)
	}

	var clResp claudeResponse
	if err := json.Unmarshal(body, &clResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var result strings.Builder
	for _, block := range clResp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(result.String())
	if text == "" {
		return "", ErrEmptyResponse
	}

	logging.APIDebug("[Claude] Generate: completed in %v response_len=%d", time.Since(startTime), len(text))
	return text, nil
}

func (c *ClaudeClient) validate() error {
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
