package relay

import (
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptdeck/relay/pkg/chat"
	"github.com/promptdeck/relay/pkg/chat/provider"
)

// Server is the relay HTTP server. Each inbound call triggers at most one
// outbound call; no state is shared between invocations.
type Server struct {
	config     Config
	dispatcher *provider.Dispatcher
	logger     *zap.Logger
	app        *fiber.App
}

// New creates a new relay Server with the standard provider dispatch table.
func New(config Config, logger *zap.Logger) (*Server, error) {
	dispatcher, err := provider.NewDispatcher(provider.Config{
		Upstreams: config.Upstreams,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.Error("unhandled error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).
				JSON(chat.NewErrorResponse("Internal server error"))
		},
	})

	s := &Server{
		config:     config,
		dispatcher: dispatcher,
		logger:     logger,
		app:        app,
	}

	// Panics from handlers fall through to the ErrorHandler above and come
	// out as the generic 500 envelope.
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	// The caller is a browser form, so preflight must succeed.
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(s.logRequests)

	app.Get("/ping", s.handlePing)
	app.Get("/api/providers", s.handleProviders)
	app.Post("/api/chat", s.handleChat)

	return s, nil
}

// Run starts the relay server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting relay server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// RunWithListener starts the relay server using the provided listener.
func (s *Server) RunWithListener(listener net.Listener) error {
	s.logger.Info("starting relay server",
		zap.String("listen", listener.Addr().String()),
	)
	return s.app.Listener(listener)
}

// Shutdown gracefully shuts down the relay server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// logRequests writes one structured log line per completed request.
func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.logger.Info("request",
		zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	return err
}
