package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
)

type memoryBlog struct {
	model.Blog
	seq uint64
}

type memoryComment struct {
	model.Comment
	seq uint64
}

// MemoryStore backs both repositories for STORE_DRIVER=memory.
// Deleting a blog cascades to its comments as the SQL schema does.
type MemoryStore struct {
	mu       sync.RWMutex
	blogs    map[uuid.UUID]*memoryBlog
	slugs    map[string]uuid.UUID
	comments map[uuid.UUID][]memoryComment
	seq      uint64
	authors  AuthorLookup
	now      func() time.Time
}

func NewMemoryStore(authors AuthorLookup) *MemoryStore {
	return &MemoryStore{
		blogs:    make(map[uuid.UUID]*memoryBlog),
		slugs:    make(map[string]uuid.UUID),
		comments: make(map[uuid.UUID][]memoryComment),
		authors:  authors,
		now:      time.Now,
	}
}

func (s *MemoryStore) Blogs() BlogRepository       { return (*memoryBlogRepository)(s) }
func (s *MemoryStore) Comments() CommentRepository { return (*memoryCommentRepository)(s) }

type memoryBlogRepository MemoryStore

func (r *memoryBlogRepository) withAuthor(ctx context.Context, b model.Blog) (model.BlogWithAuthor, error) {
	author, err := r.authors(ctx, b.AuthorID)
	if err != nil {
		return model.BlogWithAuthor{}, err
	}
	return model.BlogWithAuthor{Blog: b, Author: author}, nil
}

func (r *memoryBlogRepository) List(ctx context.Context) ([]model.BlogWithAuthor, error) {
	r.mu.RLock()
	rows := make([]memoryBlog, 0, len(r.blogs))
	for _, b := range r.blogs {
		rows = append(rows, *b)
	}
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]model.BlogWithAuthor, 0, len(rows))
	for _, row := range rows {
		b, err := r.withAuthor(ctx, row.Blog)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *memoryBlogRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogWithAuthor, error) {
	r.mu.RLock()
	id, ok := r.slugs[slug]
	var b model.Blog
	if ok {
		b = r.blogs[id].Blog
	}
	r.mu.RUnlock()

	if !ok {
		return nil, model.ErrBlogNotFound
	}
	out, err := r.withAuthor(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memoryBlogRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	out := b.Blog
	return &out, nil
}

func (r *memoryBlogRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.slugs[slug]
	return ok, nil
}

func (r *memoryBlogRepository) ImageReferenced(_ context.Context, url string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.blogs {
		if strings.Contains(b.Content, url) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryBlogRepository) Create(_ context.Context, nb model.NewBlog) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.slugs[nb.Slug]; taken {
		return nil, model.ErrDuplicateSlug
	}

	now := r.now()
	r.seq++
	b := &memoryBlog{
		Blog: model.Blog{
			ID:        uuid.New(),
			Title:     nb.Title,
			Slug:      nb.Slug,
			Content:   nb.Content,
			Excerpt:   nb.Excerpt,
			AuthorID:  nb.AuthorID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: r.seq,
	}
	r.blogs[b.ID] = b
	r.slugs[b.Slug] = b.ID

	out := b.Blog
	return &out, nil
}

func (r *memoryBlogRepository) Update(_ context.Context, id uuid.UUID, upd model.BlogUpdate) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	b.Title = upd.Title
	b.Content = upd.Content
	b.Excerpt = upd.Excerpt
	b.UpdatedAt = r.now()

	out := b.Blog
	return &out, nil
}

func (r *memoryBlogRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return model.ErrBlogNotFound
	}
	delete(r.slugs, b.Slug)
	delete(r.blogs, id)
	delete(r.comments, id)
	return nil
}

func (r *memoryBlogRepository) IncrementLikes(_ context.Context, id uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return 0, model.ErrBlogNotFound
	}
	b.Likes++
	return b.Likes, nil
}

// ========================================
// COMMENTS
// ========================================

type memoryCommentRepository MemoryStore

func (r *memoryCommentRepository) ListByBlog(ctx context.Context, blogID uuid.UUID) ([]model.CommentWithAuthor, error) {
	r.mu.RLock()
	rows := append([]memoryComment(nil), r.comments[blogID]...)
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]model.CommentWithAuthor, 0, len(rows))
	for _, row := range rows {
		author, err := r.authors(ctx, row.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.CommentWithAuthor{Comment: row.Comment, Author: author})
	}
	return out, nil
}

func (r *memoryCommentRepository) Create(_ context.Context, blogID, userID uuid.UUID, content string) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[blogID]; !ok {
		return nil, model.ErrBlogNotFound
	}

	r.seq++
	c := memoryComment{
		Comment: model.Comment{
			ID:        uuid.New(),
			BlogID:    blogID,
			UserID:    userID,
			Content:   content,
			CreatedAt: r.now(),
		},
		seq: r.seq,
	}
	r.comments[blogID] = append(r.comments[blogID], c)

	out := c.Comment
	return &out, nil
}
