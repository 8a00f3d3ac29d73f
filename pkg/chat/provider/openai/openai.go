// Package openai implements the adapter for OpenAI's Chat Completions API.
// It doubles as the relay's default adapter: any OpenAI-compatible upstream
// accepts the same wire shape.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/promptdeck/relay/pkg/chat"
)

const (
	// DefaultBaseURL is OpenAI's public API host.
	DefaultBaseURL = "https://api.openai.com"

	completionsPath = "/v1/chat/completions"
)

// provider implements the Provider interface for OpenAI's Chat Completions API.
type provider struct {
	baseURL string
}

// New creates the OpenAI adapter. An empty baseURL uses the public endpoint.
func New(baseURL string) *provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &provider{baseURL: baseURL}
}

func (p *provider) Name() string {
	return "openai"
}

// CanHandle always returns true: the OpenAI adapter is the catch-all and
// must only ever be consulted from the dispatcher's default slot.
func (p *provider) CanHandle(model string) bool {
	return true
}

// NewRequest shapes the generic request into OpenAI's wire format. All
// messages are forwarded as-is and in order; the token cap travels as
// max_completion_tokens; response_format is included only when the caller
// supplied a preference.
func (p *provider) NewRequest(ctx context.Context, req *chat.Request) (*http.Request, error) {
	messages := make([]openaiMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openaiMessage{Role: msg.Role, Content: msg.Content})
	}

	body := openaiRequest{
		Model:               req.Model,
		Messages:            messages,
		Temperature:         *req.Temperature,
		MaxCompletionTokens: *req.MaxTokens,
	}
	if req.ResponseFormat != "" {
		body.ResponseFormat = &responseFormat{Type: req.ResponseFormat}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding openai request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	return httpReq, nil
}
