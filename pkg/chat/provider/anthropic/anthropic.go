// Package anthropic implements the adapter for Anthropic's Messages API.
package anthropic

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
	// DefaultBaseURL is Anthropic's public API host.
	DefaultBaseURL = "https://api.anthropic.com"

	// ModelPrefix identifies Claude models in dispatch.
	ModelPrefix = "claude-"

	messagesPath = "/v1/messages"

	// apiVersion is the anthropic-version header value the Messages API requires.
	apiVersion = "2023-06-01"

	// defaultSystemPrompt is sent when the conversation carries no system
	// message; the Messages API takes the system prompt as a top-level field.
	defaultSystemPrompt = "You are a helpful assistant."
)

// provider implements the Provider interface for Anthropic's Messages API.
type provider struct {
	baseURL string
}

// New creates the Anthropic adapter. An empty baseURL uses the public endpoint.
func New(baseURL string) *provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &provider{baseURL: baseURL}
}

func (p *provider) Name() string {
	return "anthropic"
}

func (p *provider) CanHandle(model string) bool {
	return strings.HasPrefix(model, ModelPrefix)
}

// NewRequest shapes the generic request into Anthropic's wire format. The
// first system message becomes the top-level system string and only user
// turns travel in the messages list. The token cap goes out as max_tokens.
// Anthropic has no response-format equivalent, so the hint is dropped.
func (p *provider) NewRequest(ctx context.Context, req *chat.Request) (*http.Request, error) {
	users := req.UserMessages()
	messages := make([]anthropicMessage, 0, len(users))
	for _, msg := range users {
		messages = append(messages, anthropicMessage{Role: msg.Role, Content: msg.Content})
	}

	body := anthropicRequest{
		Model:       req.Model,
		MaxTokens:   *req.MaxTokens,
		Temperature: *req.Temperature,
		Messages:    messages,
		System:      req.SystemPrompt(defaultSystemPrompt),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding anthropic request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", req.APIKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	return httpReq, nil
}
