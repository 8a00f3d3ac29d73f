package config

const (
	defaultListen = ":8080"

	defaultOpenAIUpstream    = "https://api.openai.com"
	defaultAnthropicUpstream = "https://api.anthropic.com"
	defaultDeepseekUpstream  = "https://api.deepseek.com"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			Listen: defaultListen,
		},
		Providers: ProvidersConfig{
			OpenAIUpstream:    defaultOpenAIUpstream,
			AnthropicUpstream: defaultAnthropicUpstream,
			DeepseekUpstream:  defaultDeepseekUpstream,
		},
	}
}
