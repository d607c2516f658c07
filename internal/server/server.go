// Package server assembles the fiber application: middleware, handlers and
// routes.
package server

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/makeasinger/lyricstudio/internal/client"
	"github.com/makeasinger/lyricstudio/internal/config"
	"github.com/makeasinger/lyricstudio/internal/handler"
	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/middleware"
	"github.com/makeasinger/lyricstudio/internal/service"
	"github.com/makeasinger/lyricstudio/pkg/response"
)

// Deps are the external collaborators of the app. Redis, Chat and Storage
// may be nil; the matching feature then falls back or is disabled.
type Deps struct {
	Config  *config.Config
	Redis   *redis.Client
	Chat    *client.ChatClient
	Storage client.StorageClient
	// Font is a UTF-8 TrueType font for PDF exports, checked with
	// document.ParseFont. Nil limits exports to Windows-1252 text.
	Font []byte
	Log  logging.Logger
	// AccessLog disables fiber's request logger when false.
	AccessLog bool
}

// New builds the fiber app serving the lyrics form and its API.
func New(d Deps) *fiber.App {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = logging.Discard()
	}

	validate := validator.New()

	// Services
	var chat service.Chatter
	if d.Chat != nil {
		chat = d.Chat
	}
	lyricsService := service.NewLyricsService(chat)
	exportService := service.NewExportService(d.Storage)
	exportService.SetFont(d.Font)

	// Handlers
	pageHandler := handler.NewPageHandler(lyricsService)
	lyricsHandler := handler.NewLyricsHandler(lyricsService, validate)
	exportHandler := handler.NewExportHandler(exportService, validate)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter := middleware.NewRateLimiter(d.Redis, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024,
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"chat":    d.Chat != nil && d.Chat.IsConfigured(),
				"storage": exportService.StorageConfigured(),
				"redis":   d.Redis != nil,
				"auth":    authMiddleware.Enabled(),
			},
		})
	})

	// Form page
	lyricsLimit := rateLimiter.LyricsLimit(cfg.RateLimit.LyricsPerMin)
	app.Get("/", pageHandler.Index)
	app.Post("/", lyricsLimit, pageHandler.Submit)

	// API
	app.Post("/generate-lyrics", authMiddleware.Authenticate(), lyricsLimit, lyricsHandler.Generate)

	// The page posts to /export/pdf directly, so only sharing needs a token.
	export := app.Group("/export", rateLimiter.ExportLimit(cfg.RateLimit.ExportPerHour))
	export.Post("/pdf", exportHandler.PDF)
	export.Post("/pdf/share", authMiddleware.Authenticate(), exportHandler.Share)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return response.Error(c, code, response.CodeServiceError, message, nil)
}
