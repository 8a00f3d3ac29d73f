package deepseek

// deepseekRequest represents Deepseek's chat completion request format.
type deepseekRequest struct {
	Model          string            `json:"model"`
	Messages       []deepseekMessage `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
	ResponseFormat *responseFormat   `json:"response_format,omitempty"`
}

// deepseekMessage represents a message in Deepseek's format.
type deepseekMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// responseFormat selects structured output, mirroring OpenAI's shape.
type responseFormat struct {
	Type string `json:"type"`
}
