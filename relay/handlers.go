package relay

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/promptdeck/relay/pkg/chat"
	"github.com/promptdeck/relay/pkg/chat/provider"
)

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleProviders returns the dispatch table: which provider claims which
// model prefix and which one is the default.
func (s *Server) handleProviders(c *fiber.Ctx) error {
	return c.JSON(map[string]any{
		"providers": provider.Routes(),
	})
}

// handleChat is the relay endpoint. It validates the generic chat request,
// dispatches it to exactly one provider adapter, and relays the upstream
// outcome back in vendor-native shape.
func (s *Server) handleChat(c *fiber.Ctx) error {
	req, err := chat.ParseRequest(c.Body())
	if err != nil {
		s.logger.Warn("rejected chat request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).
			JSON(chat.NewErrorResponse("Missing required fields"))
	}

	result, err := s.dispatcher.Dispatch(c.Context(), req)
	if err != nil {
		// Transport-level failures (and anything else the dispatcher could
		// not turn into an upstream status) surface as the generic internal
		// error; the zap log at the failure site keeps the detail.
		if !errors.Is(err, provider.ErrUpstreamUnreachable) {
			s.logger.Error("dispatch failed", zap.Error(err))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(chat.NewErrorResponse("Internal server error"))
	}

	if result.OK() {
		if !json.Valid(result.Body) {
			s.logger.Error("upstream returned unparseable success body",
				zap.String("provider", result.Provider),
				zap.Int("status", result.StatusCode),
			)
			return c.Status(fiber.StatusBadGateway).
				JSON(chat.NewErrorResponse("Invalid JSON response from LLM provider"))
		}

		// Success bodies pass through byte-for-byte; callers interpret the
		// vendor-native shape (choices[] vs content[]).
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(result.StatusCode).Send(result.Body)
	}

	s.logger.Warn("upstream returned error status",
		zap.String("provider", result.Provider),
		zap.Int("status", result.StatusCode),
	)

	// Structured upstream errors relay verbatim with the upstream's status.
	if chat.IsErrorEnvelope(result.Body) {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(result.StatusCode).Send(result.Body)
	}

	// Unparseable error bodies (HTML gateway pages and the like) degrade to
	// a synthesized envelope instead of crashing or leaking raw bytes.
	return c.Status(result.StatusCode).
		JSON(chat.SynthesizeUpstreamError(result.StatusCode, result.Body))
}
