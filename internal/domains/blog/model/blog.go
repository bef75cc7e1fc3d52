package model

import (
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/shared"
)

// Blog là một bài viết (table blogs). Slug sinh từ title lúc tạo và không đổi.
type Blog struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   *string   `json:"excerpt"`
	AuthorID  uuid.UUID `json:"author_id"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogWithAuthor is the joined read shape for list, detail and admin views.
type BlogWithAuthor struct {
	Blog
	Author shared.AuthorInfo `json:"author"`
}

// Comment is append-only.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	BlogID    uuid.UUID `json:"blog_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentWithAuthor struct {
	Comment
	Author shared.AuthorInfo `json:"author"`
}

// Actor is whoever performs a mutation.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// CanModify: tác giả hoặc admin
func (a Actor) CanModify(b *Blog) bool {
	return a.IsAdmin || b.AuthorID == a.ID
}
