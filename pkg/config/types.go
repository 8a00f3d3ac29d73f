package config

// Config represents the persistent relay configuration stored as config.toml
// in the .relay/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Server    ServerConfig    `toml:"server"`
	Providers ProvidersConfig `toml:"providers"`
}

// ServerConfig holds relay server settings.
type ServerConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// ProvidersConfig holds per-provider upstream base URL overrides. These
// change only the scheme and host the relay dials; each adapter owns its
// endpoint path.
type ProvidersConfig struct {
	OpenAIUpstream    string `toml:"openai_upstream,omitempty"`
	AnthropicUpstream string `toml:"anthropic_upstream,omitempty"`
	DeepseekUpstream  string `toml:"deepseek_upstream,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"server.listen": {
		get: func(c *Config) string { return c.Server.Listen },
		set: func(c *Config, v string) error { c.Server.Listen = v; return nil },
	},
	"providers.openai_upstream": {
		get: func(c *Config) string { return c.Providers.OpenAIUpstream },
		set: func(c *Config, v string) error { c.Providers.OpenAIUpstream = v; return nil },
	},
	"providers.anthropic_upstream": {
		get: func(c *Config) string { return c.Providers.AnthropicUpstream },
		set: func(c *Config, v string) error { c.Providers.AnthropicUpstream = v; return nil },
	},
	"providers.deepseek_upstream": {
		get: func(c *Config) string { return c.Providers.DeepseekUpstream },
		set: func(c *Config, v string) error { c.Providers.DeepseekUpstream = v; return nil },
	},
}
