package main

import (
	"github.com/hibiken/asynq"

	"bloghub-backend/internal/domains/blog/job"
	"bloghub-backend/internal/infrastructure/storage"
	"bloghub-backend/internal/shared"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	purgeImages *job.PurgeImagesHandler
}

func initializeHandlers(objects storage.ObjectStorage) *HandlerRegistry {
	return &HandlerRegistry{
		purgeImages: job.NewPurgeImagesHandler(objects),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.Handle(shared.TypePurgeBlogImages, h.purgeImages)
}
