package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/repository"
	"bloghub-backend/internal/infrastructure/queue"
	"bloghub-backend/internal/shared"
	"bloghub-backend/internal/shared/metrics"
	"bloghub-backend/internal/shared/utils"
)

// createRetries bounds re-resolution when a concurrent insert takes our slug.
const createRetries = 3

type blogService struct {
	blogs    repository.BlogRepository
	comments repository.CommentRepository
	slugs    *SlugResolver
	queue    queue.Enqueuer
	metrics  *metrics.Metrics
}

func NewBlogService(
	blogs repository.BlogRepository,
	comments repository.CommentRepository,
	slugs *SlugResolver,
	enqueuer queue.Enqueuer,
	m *metrics.Metrics,
) Service {
	return &blogService{
		blogs:    blogs,
		comments: comments,
		slugs:    slugs,
		queue:    enqueuer,
		metrics:  m,
	}
}

// ========================================
// READS
// ========================================

func (s *blogService) ListBlogs(ctx context.Context) ([]model.BlogWithAuthor, error) {
	return s.blogs.List(ctx)
}

func (s *blogService) GetBlog(ctx context.Context, slug string) (*model.BlogWithAuthor, error) {
	return s.blogs.GetBySlug(ctx, slug)
}

func (s *blogService) ListComments(ctx context.Context, blogID uuid.UUID) ([]model.CommentWithAuthor, error) {
	return s.comments.ListByBlog(ctx, blogID)
}

// ========================================
// READER MUTATIONS
// ========================================

func (s *blogService) LikeBlog(ctx context.Context, blogID uuid.UUID) (likes int, err error) {
	defer func() { s.metrics.ObserveMutation("like", err) }()
	return s.blogs.IncrementLikes(ctx, blogID)
}

func (s *blogService) AddComment(ctx context.Context, actor model.Actor, blogID uuid.UUID, req model.CommentRequest) (c *model.Comment, err error) {
	defer func() { s.metrics.ObserveMutation("comment", err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.comments.Create(ctx, blogID, actor.ID, strings.TrimSpace(req.Content))
}

// ========================================
// ADMIN MUTATIONS
// ========================================

func (s *blogService) CreateBlog(ctx context.Context, actor model.Actor, req model.BlogRequest) (b *model.Blog, err error) {
	defer func() { s.metrics.ObserveMutation("create", err) }()

	if !actor.IsAdmin {
		return nil, model.ErrAdminRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()

	for attempt := 1; attempt <= createRetries; attempt++ {
		slug, err := s.slugs.Resolve(ctx, req.Title)
		if err != nil {
			return nil, err
		}

		b, err = s.blogs.Create(ctx, model.NewBlog{
			Title:    req.Title,
			Slug:     slug,
			Content:  req.Content,
			Excerpt:  req.Excerpt,
			AuthorID: actor.ID,
		})
		if errors.Is(err, model.ErrDuplicateSlug) {
			log.Warn().Str("slug", slug).Int("attempt", attempt).Msg("Slug taken concurrently, re-resolving")
			continue
		}
		if err != nil {
			return nil, err
		}

		log.Info().Str("blog_id", b.ID.String()).Str("slug", b.Slug).Msg("Blog created")
		return b, nil
	}

	return nil, fmt.Errorf("create blog: %w", model.ErrDuplicateSlug)
}

func (s *blogService) UpdateBlog(ctx context.Context, actor model.Actor, id uuid.UUID, req model.BlogRequest) (b *model.Blog, err error) {
	defer func() { s.metrics.ObserveMutation("update", err) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()

	current, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(current) {
		return nil, model.ErrForbidden
	}

	b, err = s.blogs.Update(ctx, id, model.BlogUpdate{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
	})
	if err != nil {
		return nil, err
	}

	s.purgeImages(ctx, id, utils.DroppedImages(current.Content, b.Content), "edited")
	return b, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, actor model.Actor, id uuid.UUID) (err error) {
	defer func() { s.metrics.ObserveMutation("delete", err) }()

	current, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(current) {
		return model.ErrForbidden
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("blog_id", id.String()).Str("actor", actor.ID.String()).Msg("Blog deleted")
	s.purgeImages(ctx, id, utils.ImageSources(current.Content), "deleted")
	return nil
}

// purgeImages is best effort; the mutation already succeeded.
// Images still embedded by another post are kept.
func (s *blogService) purgeImages(ctx context.Context, blogID uuid.UUID, urls []string, reason string) {
	if len(urls) == 0 || s.queue == nil {
		return
	}

	urls = s.unreferenced(ctx, urls)
	if len(urls) == 0 {
		return
	}

	payload, err := json.Marshal(shared.PurgeImagesPayload{
		BlogID: blogID.String(),
		URLs:   urls,
		Reason: reason,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal purge payload")
		return
	}

	task := asynq.NewTask(shared.TypePurgeBlogImages, payload)
	if err := s.queue.Enqueue(ctx, task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(3)); err != nil {
		log.Warn().Err(err).Str("blog_id", blogID.String()).Int("images", len(urls)).Msg("Failed to enqueue image purge")
	}
}

// unreferenced drops URLs another post still embeds. On a lookup error the
// URL is kept in storage.
func (s *blogService) unreferenced(ctx context.Context, urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		used, err := s.blogs.ImageReferenced(ctx, u)
		if err != nil {
			log.Warn().Err(err).Str("url", u).Msg("Image reference check failed, keeping object")
			continue
		}
		if !used {
			out = append(out, u)
		}
	}
	return out
}
