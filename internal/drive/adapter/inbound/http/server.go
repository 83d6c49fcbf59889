package http_handler

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-cloud-drive/internal/drive/config"
	"github.com/anthanhphan/go-cloud-drive/internal/drive/port"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports whether a dependency can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.DriveService
	auth    port.AuthService
	health  HealthChecker
}

func NewServer(cfg *config.Config, service port.DriveService, auth port.AuthService, health HealthChecker) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(cfg.App.MaxUploadSize),
		StreamRequestBody:     true,
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(metricsMiddleware())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
		auth:    auth,
		health:  health,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	s.app.Get("/public/:publicId", s.handlePublic)

	// Auth runs per route; unmatched paths answer 404 without a token.
	auth := s.requireUser

	s.app.Get("/folders", auth, s.handleListFolders)
	s.app.Post("/folders", auth, s.handleCreateFolder)
	s.app.Patch("/folders/:folderId", auth, s.handleRenameFolder)
	s.app.Delete("/folders/:folderId", auth, s.handleDeleteFolder)
	s.app.Get("/folders/:folderId/zip", auth, s.handleZip)
	s.app.Get("/folders/:folderId/files", auth, s.handleListFiles)
	s.app.Post("/folders/:folderId/files", auth, s.handleUpload)

	s.app.Get("/files/:fileId", auth, s.handleGetFile)
	s.app.Get("/files/:fileId/download", auth, s.handleDownload)
	s.app.Get("/files/:fileId/preview", auth, s.handlePreview)
	s.app.Patch("/files/:fileId", auth, s.handleRenameFile)
	s.app.Delete("/files/:fileId", auth, s.handleTrashFile)
	s.app.Post("/files/:fileId/share", auth, s.handleShareFile)

	s.app.Get("/trash", auth, s.handleListTrash)
	s.app.Post("/trash/:fileId/restore", auth, s.handleRestore)
	s.app.Delete("/trash/:fileId", auth, s.handlePurge)

	s.app.Get("/recent", auth, s.handleRecent)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	if s.health != nil {
		if err := s.health.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// fiberErrorHandler renders errors raised by fiber itself, such as unknown routes.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := msgInternal
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return sendError(c, code, message)
}
