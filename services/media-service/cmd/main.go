package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farhanms/playfield/common/config"
	"github.com/farhanms/playfield/common/logger"
	"github.com/farhanms/playfield/services/media-service/internal/handler"
	"github.com/farhanms/playfield/services/media-service/internal/processor"
	"github.com/farhanms/playfield/services/media-service/internal/storage"
)

func main() {
	env := config.NewEnvLoader("PLAYFIELD")
	configPath := env.GetString("CONFIG_PATH", "../config")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}

	var appLogger *logger.Logger
	if cfg.Server.Environment == "production" {
		appLogger = logger.Default("media-service")
	} else {
		appLogger = logger.Development("media-service")
	}

	fileStorage, err := storage.NewFileStorage(cfg.Media.StoragePath)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	imageProcessor := processor.NewImageProcessor(cfg.Media.ThumbnailWidth, cfg.Media.ThumbnailHeight)

	mediaHandler := handler.NewMediaHandler(
		fileStorage,
		imageProcessor,
		cfg.Media.BaseURL,
		cfg.Media.MaxUploadBytes,
		appLogger,
	)

	router := handler.NewRouter(mediaHandler, cfg.Media.StoragePath)

	// media listens one port above the booking API unless overridden
	port := env.GetInt("MEDIA_PORT", cfg.Server.HTTPPort+1)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		appLogger.Info(fmt.Sprintf("Media service listening on %d", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down media service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Shutdown error: %v", err))
	}

	appLogger.Info("Media service stopped")
}
