package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/makeasinger/lyricstudio/internal/client"
	"github.com/makeasinger/lyricstudio/internal/config"
	"github.com/makeasinger/lyricstudio/internal/document"
	"github.com/makeasinger/lyricstudio/internal/logging"
	"github.com/makeasinger/lyricstudio/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.Configure(os.Stderr, cfg.Server.LogLevel)
	ctx := context.Background()
	logger := logging.NewLogger(ctx)

	// Initialize Redis client
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		// Test Redis connection
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("Redis not available, rate limits are not enforced: %v", err)
		}
	}

	// External clients
	chatClient := client.NewChatClient(&cfg.Chat)
	if !chatClient.IsConfigured() {
		logger.Warnf("Chat API key not set, serving mock lyrics")
	}

	deps := server.Deps{
		Config:    cfg,
		Redis:     redisClient,
		Chat:      chatClient,
		Log:       logger,
		AccessLog: true,
	}

	if cfg.Storage.BucketName != "" {
		s3Client, err := client.NewS3Client(ctx, &cfg.Storage)
		if err != nil {
			logger.Warnf("Storage disabled: %v", err)
		} else {
			deps.Storage = s3Client
		}
	}

	if cfg.Export.FontPath != "" {
		font, err := os.ReadFile(cfg.Export.FontPath)
		if err == nil {
			err = document.ParseFont(font)
		}
		if err != nil {
			logger.Errorf("Export font %s: %v", cfg.Export.FontPath, err)
			os.Exit(1)
		}
		deps.Font = font
	}

	app := server.New(deps)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Infof("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Errorf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	logger.Infof("Server starting on %s (%s)", addr, cfg.Server.Env)
	if err := app.Listen(addr); err != nil {
		logger.Errorf("Server error: %v", err)
		os.Exit(1)
	}
}
