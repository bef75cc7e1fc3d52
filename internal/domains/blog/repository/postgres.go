package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/infrastructure/database"
)

const slugConstraint = "blogs_slug_key"

const selectBlogWithAuthor = `
	SELECT b.id, b.title, b.slug, b.content, b.excerpt, b.author_id, b.likes,
	       b.created_at, b.updated_at, p.full_name, p.email
	FROM blogs b
	JOIN profiles p ON p.id = b.author_id
`

type postgresBlogRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &postgresBlogRepository{pool: pool}
}

func scanBlogWithAuthor(row pgx.Row) (*model.BlogWithAuthor, error) {
	var b model.BlogWithAuthor
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt, &b.AuthorID, &b.Likes,
		&b.CreatedAt, &b.UpdatedAt, &b.Author.FullName, &b.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBlog(row pgx.Row) (*model.Blog, error) {
	var b model.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt, &b.AuthorID, &b.Likes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlogNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *postgresBlogRepository) List(ctx context.Context) ([]model.BlogWithAuthor, error) {
	rows, err := r.pool.Query(ctx, selectBlogWithAuthor+` ORDER BY b.created_at DESC, b.id`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.BlogWithAuthor, 0)
	for rows.Next() {
		b, err := scanBlogWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blogs: %w", err)
	}
	return blogs, nil
}

func (r *postgresBlogRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogWithAuthor, error) {
	b, err := scanBlogWithAuthor(r.pool.QueryRow(ctx, selectBlogWithAuthor+` WHERE b.slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("get blog by slug: %w", err)
	}
	return b, nil
}

func (r *postgresBlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, `
		SELECT id, title, slug, content, excerpt, author_id, likes, created_at, updated_at
		FROM blogs WHERE id = $1
	`, id))
	if err != nil && !errors.Is(err, model.ErrBlogNotFound) {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, err
}

func (r *postgresBlogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

// strpos thay vì LIKE để '%' và '_' trong URL không bị hiểu là wildcard
func (r *postgresBlogRepository) ImageReferenced(ctx context.Context, url string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE strpos(content, $1) > 0)`, url).Scan(&exists); err != nil {
		return false, fmt.Errorf("check image reference: %w", err)
	}
	return exists, nil
}

func (r *postgresBlogRepository) Create(ctx context.Context, nb model.NewBlog) (*model.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, slug, content, excerpt, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, slug, content, excerpt, author_id, likes, created_at, updated_at
	`, nb.Title, nb.Slug, nb.Content, nb.Excerpt, nb.AuthorID))
	if err != nil {
		if database.IsUniqueViolation(err, slugConstraint) {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	return b, nil
}

func (r *postgresBlogRepository) Update(ctx context.Context, id uuid.UUID, upd model.BlogUpdate) (*model.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, `
		UPDATE blogs
		SET title = $2, content = $3, excerpt = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, slug, content, excerpt, author_id, likes, created_at, updated_at
	`, id, upd.Title, upd.Content, upd.Excerpt))
	if err != nil && !errors.Is(err, model.ErrBlogNotFound) {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return b, err
}

func (r *postgresBlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *postgresBlogRepository) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	var likes int
	err := r.pool.QueryRow(ctx, `UPDATE blogs SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrBlogNotFound
		}
		return 0, fmt.Errorf("increment likes: %w", err)
	}
	return likes, nil
}

// ========================================
// COMMENTS
// ========================================

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

func (r *postgresCommentRepository) ListByBlog(ctx context.Context, blogID uuid.UUID) ([]model.CommentWithAuthor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.blog_id, c.user_id, c.content, c.created_at, p.full_name, p.email
		FROM comments c
		JOIN profiles p ON p.id = c.user_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC, c.id
	`, blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.CommentWithAuthor, 0)
	for rows.Next() {
		var c model.CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.CreatedAt, &c.Author.FullName, &c.Author.Email); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (r *postgresCommentRepository) Create(ctx context.Context, blogID, userID uuid.UUID, content string) (*model.Comment, error) {
	c := model.Comment{BlogID: blogID, UserID: userID, Content: content}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (blog_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, blogID, userID, content).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &c, nil
}
