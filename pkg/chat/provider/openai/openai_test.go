package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/promptdeck/relay/pkg/chat"
	"github.com/promptdeck/relay/pkg/chat/provider"
	"github.com/promptdeck/relay/pkg/chat/provider/openai"
)

func newChatRequest(model string, temperature float64, maxTokens int, messages ...chat.Message) *chat.Request {
	return &chat.Request{
		APIKey:      "sk-test-123",
		Model:       model,
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	}
}

func decodeBody(httpReq *http.Request) map[string]any {
	data, err := io.ReadAll(httpReq.Body)
	Expect(err).NotTo(HaveOccurred())

	var body map[string]any
	Expect(json.Unmarshal(data, &body)).To(Succeed())
	return body
}

var _ = Describe("OpenAI Provider", func() {
	var p provider.Provider

	BeforeEach(func() {
		p = openai.New("")
	})

	Describe("Name", func() {
		It("returns 'openai'", func() {
			Expect(p.Name()).To(Equal("openai"))
		})
	})

	Describe("CanHandle", func() {
		It("accepts everything as the catch-all adapter", func() {
			Expect(p.CanHandle("gpt-4.1")).To(BeTrue())
			Expect(p.CanHandle("o3-mini")).To(BeTrue())
			Expect(p.CanHandle("mistral-large")).To(BeTrue())
			Expect(p.CanHandle("")).To(BeTrue())
		})
	})

	Describe("NewRequest", func() {
		It("targets the chat completions endpoint", func() {
			req := newChatRequest("gpt-4.1", 0.5, 100,
				chat.Message{Role: "user", Content: "Hi"},
			)

			httpReq, err := p.NewRequest(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(httpReq.Method).To(Equal(http.MethodPost))
			Expect(httpReq.URL.String()).To(Equal("https://api.openai.com/v1/chat/completions"))
		})

		It("sets bearer auth", func() {
			req := newChatRequest("gpt-4.1", 0.5, 100,
				chat.Message{Role: "user", Content: "Hi"},
			)

			httpReq, err := p.NewRequest(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(httpReq.Header.Get("Authorization")).To(Equal("Bearer sk-test-123"))
			Expect(httpReq.Header.Get("Content-Type")).To(Equal("application/json"))
		})

		It("forwards all messages in order, system included", func() {
			req := newChatRequest("gpt-4.1", 0.5, 100,
				chat.Message{Role: "system", Content: "Be terse."},
				chat.Message{Role: "user", Content: "Hi"},
			)

			httpReq, err := p.NewRequest(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())

			body := decodeBody(httpReq)
			Expect(body["model"]).To(Equal("gpt-4.1"))
			Expect(body["temperature"]).To(BeNumerically("==", 0.5))
			Expect(body["max_completion_tokens"]).To(BeNumerically("==", 100))
			Expect(body).NotTo(HaveKey("max_tokens"))
			Expect(body).NotTo(HaveKey("system"))

			messages, ok := body["messages"].([]any)
			Expect(ok).To(BeTrue())
			Expect(messages).To(HaveLen(2))
			first, ok := messages[0].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(first["role"]).To(Equal("system"))
			Expect(first["content"]).To(Equal("Be terse."))
		})

		It("omits response_format when the caller gave no preference", func() {
			req := newChatRequest("gpt-4.1", 0.5, 100,
				chat.Message{Role: "user", Content: "Hi"},
			)

			httpReq, err := p.NewRequest(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(decodeBody(httpReq)).NotTo(HaveKey("response_format"))
		})

		It("includes response_format when the caller asked for JSON", func() {
			req := newChatRequest("gpt-4.1", 0.5, 100,
				chat.Message{Role: "user", Content: "Hi"},
			)
			req.ResponseFormat = chat.FormatJSON

			httpReq, err := p.NewRequest(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())

			body := decodeBody(httpReq)
			format, ok := body["response_format"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(format["type"]).To(Equal("json_object"))
		})

		It("honors a base URL override", func() {
			p = openai.New("http://localhost:9999")
			req := newChatRequest("gpt-4.1", 0.5, 100,
				chat.Message{Role: "user", Content: "Hi"},
			)

			httpReq, err := p.NewRequest(context.Background(), req)
			Expect(err).NotTo(HaveOccurred())
			Expect(httpReq.URL.String()).To(Equal("http://localhost:9999/v1/chat/completions"))
		})
	})
})
