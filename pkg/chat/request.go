// Package chat defines the provider-agnostic chat completion request that the
// relay accepts from its callers, along with the validation step that runs
// before any provider dispatch.
package chat

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message roles accepted from callers. The relay's inbound contract only
// carries the system prompt and user turns; assistant turns never travel
// back through it.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Response format hints. Only providers with structured-output support
// honor these; adapters for providers without an equivalent drop the hint.
const (
	FormatText = "text"
	FormatJSON = "json_object"
)

// ErrMissingFields is returned by Validate when a required field is absent
// or carries the wrong type. It maps to the relay's 400 response.
var ErrMissingFields = errors.New("missing required fields")

// Request is the generic chat completion request shape. Field names mirror
// the JSON the browser form submits.
//
// A Request is never mutated after parsing: adapters only read it to build
// their provider-specific payloads.
type Request struct {
	// APIKey is the caller's upstream credential, forwarded verbatim.
	// The relay never inspects its shape.
	APIKey string `json:"apiKey"`

	// Model selects the upstream provider by name prefix and is forwarded
	// verbatim in the outbound payload.
	Model string `json:"model"`

	// Messages in conversation order. A system message, when present,
	// conventionally precedes the user turns.
	Messages []Message `json:"messages"`

	// Temperature is the sampling-randomness control. The relay enforces
	// no range; that is a caller-side concern.
	Temperature *float64 `json:"temperature"`

	// MaxTokens is the upper bound on generated output length.
	MaxTokens *int `json:"maxTokens"`

	// ResponseFormat is an optional output-shape hint ("text" or
	// "json_object"). Empty means no preference.
	ResponseFormat string `json:"responseFormat,omitempty"`
}

// Message is a single turn in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ParseRequest decodes and validates a raw caller payload. Any structural
// problem — malformed JSON, a mistyped field, a missing required field —
// surfaces as ErrMissingFields so the relay can answer 400 without ever
// touching an adapter.
func ParseRequest(payload []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}

// Validate checks that every required field is present and well formed.
// It performs a pure check: no defaults are substituted and no values are
// clamped.
func (r *Request) Validate() error {
	switch {
	case r.APIKey == "":
		return fmt.Errorf("%w: apiKey", ErrMissingFields)
	case r.Model == "":
		return fmt.Errorf("%w: model", ErrMissingFields)
	case r.Messages == nil:
		return fmt.Errorf("%w: messages", ErrMissingFields)
	case r.Temperature == nil:
		return fmt.Errorf("%w: temperature", ErrMissingFields)
	case r.MaxTokens == nil:
		return fmt.Errorf("%w: maxTokens", ErrMissingFields)
	case *r.MaxTokens <= 0:
		return fmt.Errorf("%w: maxTokens must be positive", ErrMissingFields)
	}

	for _, msg := range r.Messages {
		if msg.Role != RoleSystem && msg.Role != RoleUser {
			return fmt.Errorf("%w: unsupported message role %q", ErrMissingFields, msg.Role)
		}
	}

	if r.ResponseFormat != "" && r.ResponseFormat != FormatText && r.ResponseFormat != FormatJSON {
		return fmt.Errorf("%w: unsupported responseFormat %q", ErrMissingFields, r.ResponseFormat)
	}

	return nil
}

// SystemPrompt returns the content of the first system message, or the
// fallback when the conversation carries none. Adapters for providers that
// take the system prompt as a separate top-level field use this.
func (r *Request) SystemPrompt(fallback string) string {
	for _, msg := range r.Messages {
		if msg.Role == RoleSystem {
			return msg.Content
		}
	}
	return fallback
}

// UserMessages returns the user turns in order, with system messages
// filtered out.
func (r *Request) UserMessages() []Message {
	users := make([]Message, 0, len(r.Messages))
	for _, msg := range r.Messages {
		if msg.Role == RoleUser {
			users = append(users, msg)
		}
	}
	return users
}
