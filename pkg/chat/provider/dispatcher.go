package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/promptdeck/relay/pkg/chat"
	"github.com/promptdeck/relay/pkg/chat/provider/anthropic"
	"github.com/promptdeck/relay/pkg/chat/provider/deepseek"
	"github.com/promptdeck/relay/pkg/chat/provider/openai"
)

// Config configures a Dispatcher.
type Config struct {
	// Upstreams optionally overrides the base URL (scheme + host) per
	// provider name. Adapters own the endpoint paths. Useful for proxies
	// and tests; empty entries fall back to each vendor's real endpoint.
	Upstreams map[string]string

	// Client is the HTTP client for outbound calls. When nil a client with
	// a long timeout is used, since LLM completions can be slow.
	Client *http.Client

	// Logger receives structured logs for every dispatch outcome.
	Logger *zap.Logger
}

// Dispatcher routes a chat request to exactly one provider adapter and
// returns its raw outcome. Prefix-matched adapters are consulted in order;
// the default adapter lives in its own slot so that reordering the match
// list can never shadow it or be shadowed by it.
type Dispatcher struct {
	providers  []Provider
	defaultPrv Provider
	client     *http.Client
	logger     *zap.Logger
}

// NewDispatcher creates a Dispatcher with the standard adapter set:
// Anthropic and Deepseek matched by model prefix, and the OpenAI-compatible
// adapter as the default for everything else.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	providers := []Provider{
		anthropic.New(cfg.Upstreams[Anthropic]),
		deepseek.New(cfg.Upstreams[Deepseek]),
	}
	return newDispatcher(cfg, providers, openai.New(cfg.Upstreams[OpenAI]))
}

// newDispatcher wires an explicit provider list and default adapter.
// A missing default is a programming error, not a runtime condition:
// without it some model identifier would route nowhere.
func newDispatcher(cfg Config, providers []Provider, defaultPrv Provider) (*Dispatcher, error) {
	if defaultPrv == nil {
		return nil, errors.New("dispatcher requires a default provider")
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{
			// LLM completions can be slow, especially at high token budgets
			Timeout: 5 * time.Minute,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		providers:  providers,
		defaultPrv: defaultPrv,
		client:     client,
		logger:     logger,
	}, nil
}

// Select returns the adapter for the given model identifier: the first
// prefix match wins, and the default adapter takes anything left over,
// including empty and unknown model names.
func (d *Dispatcher) Select(model string) Provider {
	for _, p := range d.providers {
		if p.CanHandle(model) {
			return p
		}
	}
	return d.defaultPrv
}

// Dispatch routes the request to its adapter and issues exactly one
// outbound HTTP call. No retries, no fan-out, no fallback across
// providers: a transport failure surfaces as ErrUpstreamUnreachable and a
// non-2xx upstream status is returned as a normal Result for the caller
// to relay.
func (d *Dispatcher) Dispatch(ctx context.Context, req *chat.Request) (*Result, error) {
	prv := d.Select(req.Model)
	start := time.Now()

	httpReq, err := prv.NewRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", prv.Name(), err)
	}

	d.logger.Debug("dispatching to upstream",
		zap.String("provider", prv.Name()),
		zap.String("model", req.Model),
		zap.String("url", httpReq.URL.String()),
	)

	httpResp, err := d.client.Do(httpReq)
	if err != nil {
		d.logger.Error("upstream request failed",
			zap.String("provider", prv.Name()),
			zap.String("model", req.Model),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		d.logger.Error("failed to read upstream response",
			zap.String("provider", prv.Name()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstreamUnreachable, err)
	}

	d.logger.Debug("upstream responded",
		zap.String("provider", prv.Name()),
		zap.String("model", req.Model),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return &Result{
		Provider:   prv.Name(),
		StatusCode: httpResp.StatusCode,
		Body:       body,
	}, nil
}
