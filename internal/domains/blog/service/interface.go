package service

import (
	"context"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
)

type Service interface {
	// Reads
	ListBlogs(ctx context.Context) ([]model.BlogWithAuthor, error)
	GetBlog(ctx context.Context, slug string) (*model.BlogWithAuthor, error)
	ListComments(ctx context.Context, blogID uuid.UUID) ([]model.CommentWithAuthor, error)

	// Reader mutations
	LikeBlog(ctx context.Context, blogID uuid.UUID) (int, error)
	AddComment(ctx context.Context, actor model.Actor, blogID uuid.UUID, req model.CommentRequest) (*model.Comment, error)

	// Admin mutations
	CreateBlog(ctx context.Context, actor model.Actor, req model.BlogRequest) (*model.Blog, error)
	UpdateBlog(ctx context.Context, actor model.Actor, id uuid.UUID, req model.BlogRequest) (*model.Blog, error)
	DeleteBlog(ctx context.Context, actor model.Actor, id uuid.UUID) error
}
