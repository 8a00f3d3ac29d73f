package provider

import (
	"fmt"

	"github.com/promptdeck/relay/pkg/chat/provider/anthropic"
	"github.com/promptdeck/relay/pkg/chat/provider/deepseek"
	"github.com/promptdeck/relay/pkg/chat/provider/openai"
)

// Supported provider type constants
const (
	Anthropic = "anthropic"
	Deepseek  = "deepseek"
	OpenAI    = "openai"
)

// Route describes one entry in the dispatch table: a provider name and the
// model prefix it claims. An empty prefix marks the default adapter.
type Route struct {
	Provider string `json:"provider"`
	Prefix   string `json:"prefix,omitempty"`
	Default  bool   `json:"default,omitempty"`
}

// SupportedProviders returns the list of all supported provider type names.
func SupportedProviders() []string {
	return []string{Anthropic, Deepseek, OpenAI}
}

// Routes returns the dispatch table in evaluation order, default last.
func Routes() []Route {
	return []Route{
		{Provider: Anthropic, Prefix: anthropic.ModelPrefix},
		{Provider: Deepseek, Prefix: deepseek.ModelPrefix},
		{Provider: OpenAI, Default: true},
	}
}

// New creates a single Provider instance for the given provider type with
// an optional base URL override. Returns an error if the provider type is
// not recognized.
func New(providerType, baseURL string) (Provider, error) {
	switch providerType {
	case Anthropic:
		return anthropic.New(baseURL), nil
	case Deepseek:
		return deepseek.New(baseURL), nil
	case OpenAI:
		return openai.New(baseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %q (supported: %v)", providerType, SupportedProviders())
	}
}
