// Package deepseek implements the adapter for Deepseek's chat completion
// API. The wire shape is OpenAI-compatible except that the token cap is
// named max_tokens.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/promptdeck/relay/pkg/chat"
)

const (
	// DefaultBaseURL is Deepseek's public API host.
	DefaultBaseURL = "https://api.deepseek.com"

	// ModelPrefix identifies Deepseek models in dispatch.
	ModelPrefix = "deepseek-"

	completionsPath = "/chat/completions"
)

// provider implements the Provider interface for Deepseek's API.
type provider struct {
	baseURL string
}

// New creates the Deepseek adapter. An empty baseURL uses the public endpoint.
func New(baseURL string) *provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &provider{baseURL: baseURL}
}

func (p *provider) Name() string {
	return "deepseek"
}

func (p *provider) CanHandle(model string) bool {
	return strings.HasPrefix(model, ModelPrefix)
}

// NewRequest shapes the generic request into Deepseek's wire format: all
// messages forwarded as-is, token cap as max_tokens, response_format
// included only when the caller supplied a preference.
func (p *provider) NewRequest(ctx context.Context, req *chat.Request) (*http.Request, error) {
	messages := make([]deepseekMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, deepseekMessage{Role: msg.Role, Content: msg.Content})
	}

	body := deepseekRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: *req.Temperature,
		MaxTokens:   *req.MaxTokens,
	}
	if req.ResponseFormat != "" {
		body.ResponseFormat = &responseFormat{Type: req.ResponseFormat}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding deepseek request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	return httpReq, nil
}
