package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/infrastructure/storage"
	"bloghub-backend/internal/shared"
)

// PurgeImagesHandler xóa ảnh trong bucket không còn được bài viết nào tham chiếu
// (khi xóa bài hoặc khi sửa bài bỏ ảnh). URL ngoài bucket bị bỏ qua.
type PurgeImagesHandler struct {
	storage storage.ObjectStorage
}

func NewPurgeImagesHandler(s storage.ObjectStorage) *PurgeImagesHandler {
	return &PurgeImagesHandler{storage: s}
}

func (h *PurgeImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PurgeImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal PurgeImages payload")
		// retry không giúp được payload hỏng
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	keys := make([]string, 0, len(payload.URLs))
	for _, u := range payload.URLs {
		if key, ok := h.storage.KeyFromURL(u); ok {
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		log.Debug().Str("blog_id", payload.BlogID).Msg("No bucket images to purge")
		return nil
	}

	if err := h.storage.RemoveObjects(ctx, keys); err != nil {
		log.Error().
			Err(err).
			Str("blog_id", payload.BlogID).
			Int("count", len(keys)).
			Msg("Failed to purge blog images")
		return fmt.Errorf("remove objects: %w", err)
	}

	log.Info().
		Str("blog_id", payload.BlogID).
		Str("reason", payload.Reason).
		Int("count", len(keys)).
		Msg("Blog images purged")

	return nil
}
