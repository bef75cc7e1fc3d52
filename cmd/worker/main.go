package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/infrastructure/storage"
	"bloghub-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	gin.SetMode(gin.ReleaseMode)

	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	objects, err := storage.NewMinIOStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("[Startup] Object storage unavailable")
	}

	checker := newHealthChecker(cfg, objects)
	defer checker.Close()
	if err := checker.checkAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	srv, err := setupAsynqServer(cfg, initializeHandlers(objects))
	if err != nil {
		log.Fatal().Err(err).Msg("[Worker] Failed to start")
	}
	health := checker.healthServer(cfg.Worker.HealthPort)

	<-ctx.Done()

	log.Info().Msg("[Shutdown] Gracefully stopping")
	srv.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := health.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("[Shutdown] Health server")
	}
	log.Info().Msg("[Shutdown] Stopped")
}
