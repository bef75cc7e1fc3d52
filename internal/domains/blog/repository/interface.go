package repository

import (
	"context"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/shared"
)

// BlogRepository là backend collaborator cho table blogs
type BlogRepository interface {
	// List returns every post, newest first, joined with author fields.
	List(ctx context.Context) ([]model.BlogWithAuthor, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogWithAuthor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// ImageReferenced reports whether any post's content still contains url.
	ImageReferenced(ctx context.Context, url string) (bool, error)
	// Create returns model.ErrDuplicateSlug when the unique slug index rejects the row.
	Create(ctx context.Context, nb model.NewBlog) (*model.Blog, error)
	Update(ctx context.Context, id uuid.UUID, upd model.BlogUpdate) (*model.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementLikes adds one like atomically and returns the new count.
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)
}

// CommentRepository - comments là append-only
type CommentRepository interface {
	// ListByBlog returns comments newest first, joined with author fields.
	ListByBlog(ctx context.Context, blogID uuid.UUID) ([]model.CommentWithAuthor, error)
	Create(ctx context.Context, blogID, userID uuid.UUID, content string) (*model.Comment, error)
}

// AuthorLookup resolves display fields for the memory driver's joins.
type AuthorLookup func(ctx context.Context, id uuid.UUID) (shared.AuthorInfo, error)
