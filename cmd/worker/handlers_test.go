package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloghub-backend/internal/infrastructure/storage"
	"bloghub-backend/internal/shared"
)

func TestRegisterHandlers_RoutesPurgeTask(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage("http://cdn.local")
	url, err := store.Upload(ctx, "blog/a.png", []byte("a"), storage.UploadOptions{ContentType: "image/png"})
	require.NoError(t, err)

	mux := asynq.NewServeMux()
	initializeHandlers(store).RegisterHandlers(mux)

	payload, err := json.Marshal(shared.PurgeImagesPayload{BlogID: "b1", URLs: []string{url}, Reason: "deleted"})
	require.NoError(t, err)

	require.NoError(t, mux.ProcessTask(ctx, asynq.NewTask(shared.TypePurgeBlogImages, payload)))
	assert.Zero(t, store.Len())
}

func TestRegisterHandlers_UnknownTaskFails(t *testing.T) {
	mux := asynq.NewServeMux()
	initializeHandlers(storage.NewMemoryStorage("http://cdn.local")).RegisterHandlers(mux)

	assert.Error(t, mux.ProcessTask(context.Background(), asynq.NewTask("email:send", nil)))
}
