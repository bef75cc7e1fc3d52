package model

import "errors"

var (
	ErrBlogNotFound         = errors.New("blog not found")
	ErrForbidden            = errors.New("only the author or an admin may modify this blog")
	ErrAdminRequired        = errors.New("admin role required")
	ErrSlugExhausted        = errors.New("no free slug found for title")
	ErrDuplicateSlug        = errors.New("slug already taken")
	ErrConfirmationRequired = errors.New("Are you sure you want to delete this blog post?")
)
