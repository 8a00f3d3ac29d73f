package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// snippetLimit caps how much of an unparseable upstream body is echoed back
// in a synthesized error.
const snippetLimit = 200

// ErrorResponse is the normalized error envelope every relay failure crosses
// the boundary in. Raw Go errors never serialize into a response body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the human-readable message and, for synthesized upstream
// errors, a truncated excerpt of the original body.
type ErrorBody struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse builds an envelope with the given message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Message: message}}
}

// IsErrorEnvelope reports whether an upstream error body already carries the
// {"error": {...}} shape and can be relayed to the caller verbatim.
func IsErrorEnvelope(body []byte) bool {
	var probe struct {
		Error *json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return probe.Error != nil
}

// SynthesizeUpstreamError degrades an unparseable upstream error body (for
// example an HTML page from a gateway) into the normalized envelope. The
// message carries the upstream status line and the details a truncated
// snippet of whatever the upstream actually sent.
func SynthesizeUpstreamError(statusCode int, body []byte) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{
		Message: fmt.Sprintf("LLM provider returned status %d %s", statusCode, http.StatusText(statusCode)),
		Details: Snippet(body),
	}}
}

// Snippet returns a single-line, UTF-8-safe excerpt of body capped at
// snippetLimit bytes.
func Snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= snippetLimit {
		return s
	}

	cut := snippetLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
