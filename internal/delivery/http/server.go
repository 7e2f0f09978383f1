package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/agency-service/internal/config"
	"github.com/agency-service/internal/delivery/http/handler"
	"github.com/agency-service/internal/delivery/http/middleware"
	"github.com/agency-service/internal/pkg/auth"
)

// Server is the fiber HTTP server for the agency service.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	tokens auth.TokenIssuer

	// Handlers
	agencyHandler *handler.AgencyHandler
	queryHandler  *handler.QueryHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokens auth.TokenIssuer,
	agencyHandler *handler.AgencyHandler,
	queryHandler *handler.QueryHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Agency Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		// Agency names appear as path params and may contain spaces, so
		// percent-encoded segments must be decoded before routing.
		UnescapePath: true,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		tokens:        tokens,
		agencyHandler: agencyHandler,
		queryHandler:  queryHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	requireAuth := middleware.RequireAuth(s.tokens, s.logger)

	agency := api.Group("/agency")

	// Lifecycle routes
	agency.Post("/register", s.agencyHandler.Register)
	agency.Post("/login", s.agencyHandler.Login)
	agency.Put("/password", requireAuth, s.agencyHandler.ChangePassword)
	agency.Put("/profile", requireAuth, s.agencyHandler.UpdateProfile)

	// Read-side routes
	agency.Get("/locations", s.queryHandler.Locations)
	agency.Get("/:name/associations", s.queryHandler.Associations)
}

// App exposes the underlying fiber app for in-process request tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler reports framework-level errors without leaking
// internals into the body.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": "Internal server error",
			},
		})
	}
}
