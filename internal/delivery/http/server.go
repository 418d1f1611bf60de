package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/incident-microservice/internal/config"
	"github.com/incident-microservice/internal/delivery/http/handler"
	"github.com/incident-microservice/internal/delivery/http/middleware"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	incidentHandler *handler.IncidentHandler
	divisionHandler *handler.DivisionHandler
	unitHandler     *handler.UnitHandler
	hospitalHandler *handler.HospitalHandler
	statsHandler    *handler.StatsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	incidentHandler *handler.IncidentHandler,
	divisionHandler *handler.DivisionHandler,
	unitHandler *handler.UnitHandler,
	hospitalHandler *handler.HospitalHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Incident Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		incidentHandler: incidentHandler,
		divisionHandler: divisionHandler,
		unitHandler:     unitHandler,
		hospitalHandler: hospitalHandler,
		statsHandler:    statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
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

	// Incident routes
	api.Post("/incidents", s.incidentHandler.Create)
	api.Get("/incidents", s.incidentHandler.List)
	api.Get("/incidents/:id", s.incidentHandler.GetByID)
	api.Patch("/incidents/:id/status", s.incidentHandler.UpdateStatus)

	// Division routes
	api.Get("/incidents/:id/divisions", s.divisionHandler.ListByIncident)
	api.Post("/incidents/:id/divisions", s.divisionHandler.Create)
	api.Post("/incidents/:id/divisions/regenerate", s.divisionHandler.Regenerate)
	api.Patch("/divisions/:id", s.divisionHandler.Update)

	// Unit routes
	api.Post("/incidents/:id/units", s.unitHandler.CheckIn)
	api.Get("/incidents/:id/units", s.unitHandler.ListByIncident)
	api.Patch("/units/:id/status", s.unitHandler.UpdateStatus)
	api.Post("/units/:id/assign", s.unitHandler.Assign)

	// Hospital routes
	api.Post("/hospitals/nearest", s.hospitalHandler.Nearest)

	// Stats
	api.Get("/stats", s.statsHandler.Get)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
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
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
