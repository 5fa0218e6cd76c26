// Package llm provides a uniform client contract over the supported
// chat-completion backends: the OpenAI wire shape (also used for custom
// endpoints), the Anthropic wire shape, and the Gemini native wire shape.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client defines the uniform call contract over LLM providers.
type Client interface {
	// Generate sends a prompt and returns the completion text. No retries
	// are performed; a failed call surfaces immediately and the caller
	// decides whether to re-trigger.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ConfigError reports a missing setting detected before any network call.
type ConfigError struct {
	Missing string // "api key", "endpoint", or "model"
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing %s: configure settings before generating", e.Missing)
}

// CallError reports a failed provider call.
type CallError struct {
	Status  int // HTTP status, 0 for transport failures
	Message string
}

func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// ErrEmptyResponse is returned when a 2xx response carries no completion.
var ErrEmptyResponse = errors.New("provider returned an empty completion")

// defaultTimeout bounds a single generation request.
const defaultTimeout = 120 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// ensureDeadline applies the client timeout when the caller's context has
// none, so a hung provider cannot stall the session forever.
func ensureDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// providerError is the error envelope shared, loosely, by all three
// backends: {"error": {"message": ...}} with {"message": ...} as fallback.
type providerError struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// callErrorFromBody maps a non-2xx response to a CallError, preferring the
// provider's reported message when the body parses.
func callErrorFromBody(status int, body []byte) *CallError {
	var pe providerError
	if err := json.Unmarshal(body, &pe); err == nil {
		if pe.Error != nil && pe.Error.Message != "" {
			return &CallError{Status: status, Message: pe.Error.Message}
		}
		if pe.Message != "" {
			return &CallError{Status: status, Message: pe.Message}
		}
	}
	return &CallError{Status: status, Message: http.StatusText(status)}
}

// readBody drains a response body with a sane cap; provider error bodies are
// small and completion bodies are bounded by max output tokens.
func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}
