package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eon-group/expiring-link-service/internal/app/service"
	"github.com/eon-group/expiring-link-service/internal/http/handler"
	"github.com/eon-group/expiring-link-service/internal/http/middleware"
)

// Dependencies bundles everything the HTTP server needs to serve requests.
type Dependencies struct {
	Logger *zap.Logger
	Links  service.LinkService
	APIKey string
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// App exposes the underlying Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerMiddleware() {
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.deps.Logger))
	s.app.Use(middleware.CORS())
}

func (s *Server) registerRoutes() {
	protect := middleware.APIKey(s.deps.APIKey)

	linkHandler := handler.NewLinkHandler(handler.LinkDeps{
		Logger: s.deps.Logger,
		Links:  s.deps.Links,
	})
	linkHandler.Register(s.app, protect)

	resolveHandler := handler.NewResolveHandler(handler.ResolveDeps{
		Logger: s.deps.Logger,
		Links:  s.deps.Links,
	})
	resolveHandler.Register(s.app)
}
