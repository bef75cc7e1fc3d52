package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Enqueuer hides asynq.Client so services can run without Redis.
type Enqueuer interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error
}

// AsynqEnqueuer pushes tasks to Redis for cmd/worker.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(client *asynq.Client) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client}
}

func (e *AsynqEnqueuer) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	info, err := e.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	log.Debug().Str("type", task.Type()).Str("task_id", info.ID).Str("queue", info.Queue).Msg("[QUEUE] Task enqueued")
	return nil
}

// InlineEnqueuer runs tasks immediately on the given handler. Used with
// STORE_DRIVER=memory where no worker process exists.
type InlineEnqueuer struct {
	handler asynq.Handler
}

func NewInlineEnqueuer(handler asynq.Handler) *InlineEnqueuer {
	return &InlineEnqueuer{handler: handler}
}

func (e *InlineEnqueuer) Enqueue(ctx context.Context, task *asynq.Task, _ ...asynq.Option) error {
	if err := e.handler.ProcessTask(ctx, task); err != nil {
		log.Warn().Err(err).Str("type", task.Type()).Msg("[QUEUE] Inline task failed")
		return fmt.Errorf("process %s: %w", task.Type(), err)
	}
	return nil
}
