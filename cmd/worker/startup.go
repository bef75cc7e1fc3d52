package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/config"
	infraCache "bloghub-backend/internal/infrastructure/cache"
	"bloghub-backend/internal/infrastructure/storage"
)

// HealthChecker performs startup and liveness checks
type HealthChecker struct {
	redis   *infraCache.RedisCache
	storage *storage.MinIOStorage
}

func newHealthChecker(cfg *config.Config, objects *storage.MinIOStorage) *HealthChecker {
	return &HealthChecker{
		redis:   infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB),
		storage: objects,
	}
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll(ctx context.Context) error {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", h.redis.Ping},
		{"Object Storage", h.storage.Ping},
	}

	for _, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := check.fn(checkCtx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("[Health] Failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("[Health] OK")
	}

	return nil
}

func (h *HealthChecker) Close() {
	if err := h.redis.Close(); err != nil {
		log.Warn().Err(err).Msg("[Health] Closing Redis client")
	}
}

// healthServer exposes /health (liveness, chạy lại checks) and /ready.
func (h *HealthChecker) healthServer(port string) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if err := h.checkAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "bloghub-worker"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "READY"})
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("[Health] Starting health check server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("[Health] Server failed")
		}
	}()

	return srv
}
