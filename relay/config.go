// Package relay provides the server-side relay that accepts generic chat
// completion requests from the browser form and forwards each one to a
// single upstream LLM provider.
package relay

// Config is the relay server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// Upstreams optionally overrides the base URL per provider name
	// (e.g., {"openai": "http://localhost:9000"}). Empty entries use each
	// vendor's public endpoint.
	Upstreams map[string]string
}
