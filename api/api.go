package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/recall/api/mcp"
	"github.com/papercomputeco/recall/pkg/eventstream"
	"github.com/papercomputeco/recall/pkg/store"
)

// Server is the API server for storing and querying insight messages.
type Server struct {
	config    Config
	storer    store.Driver
	publisher eventstream.Publisher
	logger    *slog.Logger
	app       *fiber.App
}

// NewServer creates a new API server.
// The storer and publisher are injected to allow sharing with other
// components and swapping backends in tests. mcpServer may be nil to
// disable the MCP endpoint.
func NewServer(config Config, storer store.Driver, publisher eventstream.Publisher, mcpServer *mcp.Server, logger *slog.Logger) (*Server, error) {
	if storer == nil {
		return nil, errors.New("store driver is required")
	}
	if publisher == nil {
		return nil, errors.New("event publisher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		storer:    storer,
		publisher: publisher,
		logger:    logger,
		app:       app,
	}

	app.Use(corsHeaders)

	app.Get("/ping", s.handlePing)
	app.Get("/messages", s.handleListMessages)
	app.Post("/messages", s.handleCreateMessage)
	app.Delete("/messages/:id", s.handleDeleteMessage)
	app.Delete("/messages", s.handleClearMessages)

	if mcpServer != nil && mcpServer.Handler() != nil {
		app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))
	}

	return s, nil
}

// corsHeaders injects permissive CORS headers so local tooling (editor
// plugins, dashboards) can call the API directly from a browser context.
func corsHeaders(c *fiber.Ctx) error {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type")

	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Next()
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
