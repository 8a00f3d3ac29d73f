// Package provider defines the vendor adapter contract and the dispatcher
// that routes a chat request to exactly one upstream LLM provider.
package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/promptdeck/relay/pkg/chat"
)

// ErrUpstreamUnreachable is returned by Dispatch when the outbound call
// fails at the transport level before an HTTP status is available. It is
// never retried.
var ErrUpstreamUnreachable = errors.New("upstream provider unreachable")

// Provider is a stateless adapter for one vendor's chat completion API.
// Each implementation knows how to recognize its models and how to shape
// the generic request into the vendor's wire format.
type Provider interface {
	// Name returns the canonical provider name (e.g. "anthropic", "openai",
	// "deepseek").
	Name() string

	// CanHandle returns true if this provider serves the given model
	// identifier. Matching is by model-name prefix.
	CanHandle(model string) bool

	// NewRequest builds the fully-formed outbound HTTP request for the
	// vendor: endpoint URL, auth headers, and the vendor-specific JSON body.
	NewRequest(ctx context.Context, req *chat.Request) (*http.Request, error)
}

// Result is the raw outcome of a single upstream call. The body is relayed
// unmodified; callers interpret it in the vendor's native shape.
type Result struct {
	// Provider that served the call.
	Provider string

	// StatusCode is the upstream HTTP status.
	StatusCode int

	// Body is the upstream response body, byte-for-byte.
	Body []byte
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
