package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"commentgen/internal/logging"
)

// GeminiClient implements Client for the Gemini native wire shape: the API
// key travels in the query string and the envelope is contents/parts. The
// configured endpoint is the API base (".../v1beta"); the model path and
// method are appended per call.
type GeminiClient struct {
	apiKey          string
	baseURL         string
	model           string
	temperature     float64
	maxOutputTokens int
	httpClient      *http.Client
}

// NewGeminiClient creates a client for the Gemini generateContent endpoint.
func NewGeminiClient(apiKey, baseURL, model string, temperature float64) *GeminiClient {
	return &GeminiClient{
		apiKey:          apiKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		model:           model,
		temperature:     temperature,
		maxOutputTokens: 1024,
		httpClient:      newHTTPClient(),
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's first part.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	ctx, cancel := ensureDeadline(ctx, c.httpClient.Timeout)
	defer cancel()

	startTime := time.Now()
	logging.APIDebug("[Gemini] Generate: model=%s prompt_len=%d", c.model, len(prompt))

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("[Gemini] Generate: request failed: %v", err)
		return "", &CallError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.APIError("[Gemini] Generate: API returned status %d", resp.StatusCode)
		return "", callErrorFromBody(resp.StatusCode, body)
	}

	var gmResp geminiResponse
	if err := json.Unmarshal(body, &gmResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(gmResp.Candidates) == 0 || len(gmResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(gmResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}

	logging.APIDebug("[Gemini] Generate: completed in %v response_len=%d", time.Since(startTime), len(text))
	return text, nil
}

func (c *GeminiClient) validate() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return &ConfigError{Missing: "api key"}
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return &ConfigError{Missing: "endpoint"}
	}
	if strings.TrimSpace(c.model) == "" {
		return &ConfigError{Missing: "model"}
	}
	return nil
}
