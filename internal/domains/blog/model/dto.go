package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// BlogRequest - tạo hoặc sửa bài viết (admin). Slug không nhận từ client.
type BlogRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Excerpt *string `json:"excerpt"`
}

func (r BlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.By(notBlank("title is required")),
			validation.Length(1, 300),
		),
		validation.Field(&r.Content,
			validation.By(notBlank("content is required")),
		),
		validation.Field(&r.Excerpt,
			validation.Length(0, 1000),
		),
	)
}

// Normalized trims the title and turns a blank excerpt into nil.
func (r BlogRequest) Normalized() BlogRequest {
	r.Title = strings.TrimSpace(r.Title)
	if r.Excerpt != nil {
		if e := strings.TrimSpace(*r.Excerpt); e == "" {
			r.Excerpt = nil
		} else {
			r.Excerpt = &e
		}
	}
	return r
}

type CommentRequest struct {
	Content string `json:"content"`
}

func (r CommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.By(notBlank("comment content is required")),
			validation.Length(1, 5000),
		),
	)
}

func notBlank(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", msg)
		}
		return nil
	}
}

// NewBlog is what the repository inserts.
type NewBlog struct {
	Title    string
	Slug     string
	Content  string
	Excerpt  *string
	AuthorID uuid.UUID
}

// BlogUpdate is applied by id; slug is never part of it.
type BlogUpdate struct {
	Title   string
	Content string
	Excerpt *string
}

// ListItem là một post trong list view kèm preview text
type ListItem struct {
	BlogWithAuthor
	Preview string `json:"preview"`
}

// LikeResponse - POST /blogs/:slug/like
type LikeResponse struct {
	Likes int `json:"likes"`
}
