package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/config"
)

// loadConfig đọc config chung và chặn driver memory:
// với memory, purge chạy inline trong API nên không có gì để consume.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[Config] Failed to load")
	}
	if cfg.Store.Driver == "memory" {
		log.Fatal().Msg("[Config] STORE_DRIVER=memory runs jobs inline, the worker is not needed")
	}

	log.Info().
		Str("redis", cfg.Redis.Host).
		Str("storage", cfg.Storage.Endpoint).
		Int("concurrency", cfg.Worker.Concurrency).
		Msg("[Config] Loaded")

	return cfg
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}
