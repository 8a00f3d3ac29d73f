package chat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/promptdeck/relay/pkg/chat"
)

// validPayload returns a complete request payload with every required field
// set. Tests knock out individual fields from the result.
func validPayload() string {
	return `{
		"apiKey": "sk-test-123",
		"model": "gpt-4.1",
		"messages": [
			{"role": "system", "content": "Be terse."},
			{"role": "user", "content": "Hi"}
		],
		"temperature": 0.5,
		"maxTokens": 100
	}`
}

var _ = Describe("ParseRequest", func() {
	Context("with a complete payload", func() {
		It("parses every field", func() {
			req, err := chat.ParseRequest([]byte(validPayload()))
			Expect(err).NotTo(HaveOccurred())
			Expect(req.APIKey).To(Equal("sk-test-123"))
			Expect(req.Model).To(Equal("gpt-4.1"))
			Expect(req.Messages).To(HaveLen(2))
			Expect(req.Messages[0].Role).To(Equal("system"))
			Expect(req.Messages[0].Content).To(Equal("Be terse."))
			Expect(req.Messages[1].Role).To(Equal("user"))
			Expect(req.Messages[1].Content).To(Equal("Hi"))
			Expect(*req.Temperature).To(Equal(0.5))
			Expect(*req.MaxTokens).To(Equal(100))
			Expect(req.ResponseFormat).To(BeEmpty())
		})

		It("parses an optional responseFormat", func() {
			payload := `{
				"apiKey": "sk-test-123",
				"model": "gpt-4.1",
				"messages": [{"role": "user", "content": "Hi"}],
				"temperature": 0.7,
				"maxTokens": 256,
				"responseFormat": "json_object"
			}`
			req, err := chat.ParseRequest([]byte(payload))
			Expect(err).NotTo(HaveOccurred())
			Expect(req.ResponseFormat).To(Equal(chat.FormatJSON))
		})

		It("accepts an empty messages array", func() {
			payload := `{
				"apiKey": "sk-test-123",
				"model": "gpt-4.1",
				"messages": [],
				"temperature": 0.7,
				"maxTokens": 256
			}`
			req, err := chat.ParseRequest([]byte(payload))
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Messages).To(BeEmpty())
		})

		It("accepts a zero temperature", func() {
			payload := `{
				"apiKey": "sk-test-123",
				"model": "gpt-4.1",
				"messages": [{"role": "user", "content": "Hi"}],
				"temperature": 0,
				"maxTokens": 256
			}`
			req, err := chat.ParseRequest([]byte(payload))
			Expect(err).NotTo(HaveOccurred())
			Expect(*req.Temperature).To(Equal(0.0))
		})
	})

	Context("with missing required fields", func() {
		DescribeTable("rejects the payload",
			func(payload string) {
				req, err := chat.ParseRequest([]byte(payload))
				Expect(err).To(MatchError(chat.ErrMissingFields))
				Expect(req).To(BeNil())
			},
			Entry("empty object", `{}`),
			Entry("no apiKey", `{"model": "gpt-4.1", "messages": [], "temperature": 0.5, "maxTokens": 100}`),
			Entry("no model", `{"apiKey": "k", "messages": [], "temperature": 0.5, "maxTokens": 100}`),
			Entry("no messages", `{"apiKey": "k", "model": "gpt-4.1", "temperature": 0.5, "maxTokens": 100}`),
			Entry("no temperature", `{"apiKey": "k", "model": "gpt-4.1", "messages": [], "maxTokens": 100}`),
			Entry("no maxTokens", `{"apiKey": "k", "model": "gpt-4.1", "messages": [], "temperature": 0.5}`),
			Entry("null messages", `{"apiKey": "k", "model": "gpt-4.1", "messages": null, "temperature": 0.5, "maxTokens": 100}`),
		)
	})

	Context("with malformed payloads", func() {
		It("rejects invalid JSON", func() {
			req, err := chat.ParseRequest([]byte(`not json`))
			Expect(err).To(MatchError(chat.ErrMissingFields))
			Expect(req).To(BeNil())
		})

		It("rejects mistyped fields", func() {
			payload := `{
				"apiKey": "k",
				"model": "gpt-4.1",
				"messages": [],
				"temperature": "hot",
				"maxTokens": 100
			}`
			req, err := chat.ParseRequest([]byte(payload))
			Expect(err).To(MatchError(chat.ErrMissingFields))
			Expect(req).To(BeNil())
		})

		It("rejects an empty payload", func() {
			req, err := chat.ParseRequest(nil)
			Expect(err).To(MatchError(chat.ErrMissingFields))
			Expect(req).To(BeNil())
		})
	})

	Context("with invalid field values", func() {
		It("rejects a zero maxTokens", func() {
			payload := `{"apiKey": "k", "model": "gpt-4.1", "messages": [], "temperature": 0.5, "maxTokens": 0}`
			_, err := chat.ParseRequest([]byte(payload))
			Expect(err).To(MatchError(chat.ErrMissingFields))
		})

		It("rejects a negative maxTokens", func() {
			payload := `{"apiKey": "k", "model": "gpt-4.1", "messages": [], "temperature": 0.5, "maxTokens": -5}`
			_, err := chat.ParseRequest([]byte(payload))
			Expect(err).To(MatchError(chat.ErrMissingFields))
		})

		It("rejects an assistant role", func() {
			payload := `{
				"apiKey": "k",
				"model": "gpt-4.1",
				"messages": [{"role": "assistant", "content": "Hello"}],
				"temperature": 0.5,
				"maxTokens": 100
			}`
			_, err := chat.ParseRequest([]byte(payload))
			Expect(err).To(MatchError(chat.ErrMissingFields))
		})

		It("rejects an unknown responseFormat", func() {
			payload := `{
				"apiKey": "k",
				"model": "gpt-4.1",
				"messages": [],
				"temperature": 0.5,
				"maxTokens": 100,
				"responseFormat": "xml"
			}`
			_, err := chat.ParseRequest([]byte(payload))
			Expect(err).To(MatchError(chat.ErrMissingFields))
		})
	})
})

var _ = Describe("Request", func() {
	newRequest := func(messages ...chat.Message) *chat.Request {
		temp := 0.5
		maxTokens := 100
		return &chat.Request{
			APIKey:      "sk-test-123",
			Model:       "gpt-4.1",
			Messages:    messages,
			Temperature: &temp,
			MaxTokens:   &maxTokens,
		}
	}

	Describe("SystemPrompt", func() {
		It("returns the first system message content", func() {
			req := newRequest(
				chat.Message{Role: chat.RoleSystem, Content: "Be terse."},
				chat.Message{Role: chat.RoleUser, Content: "Hi"},
			)
			Expect(req.SystemPrompt("fallback")).To(Equal("Be terse."))
		})

		It("returns the fallback when no system message exists", func() {
			req := newRequest(
				chat.Message{Role: chat.RoleUser, Content: "Hi"},
			)
			Expect(req.SystemPrompt("fallback")).To(Equal("fallback"))
		})

		It("ignores later system messages", func() {
			req := newRequest(
				chat.Message{Role: chat.RoleSystem, Content: "first"},
				chat.Message{Role: chat.RoleSystem, Content: "second"},
			)
			Expect(req.SystemPrompt("fallback")).To(Equal("first"))
		})
	})

	Describe("UserMessages", func() {
		It("filters out system messages", func() {
			req := newRequest(
				chat.Message{Role: chat.RoleSystem, Content: "Be terse."},
				chat.Message{Role: chat.RoleUser, Content: "first"},
				chat.Message{Role: chat.RoleUser, Content: "second"},
			)

			users := req.UserMessages()
			Expect(users).To(HaveLen(2))
			Expect(users[0].Content).To(Equal("first"))
			Expect(users[1].Content).To(Equal("second"))
		})

		It("returns empty for a system-only conversation", func() {
			req := newRequest(
				chat.Message{Role: chat.RoleSystem, Content: "Be terse."},
			)
			Expect(req.UserMessages()).To(BeEmpty())
		})
	})
})
