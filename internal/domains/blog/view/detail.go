package view

import (
	"context"
	"fmt"
	"sync"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
)

type DetailState struct {
	Status       Status                    `json:"status"`
	Post         *model.BlogWithAuthor     `json:"post"`
	Comments     []model.CommentWithAuthor `json:"comments"`
	Error        string                    `json:"error,omitempty"`
	Cause        error                     `json:"-"`
	LastMutation *Mutation                 `json:"last_mutation,omitempty"`
}

// DetailView holds one post (by slug) and its comments, newest first.
type DetailView struct {
	svc service.Service

	mu    sync.RWMutex
	state DetailState
	gen   uint64
}

func NewDetailView(svc service.Service) *DetailView {
	return &DetailView{
		svc:   svc,
		state: DetailState{Status: StatusLoading, Comments: []model.CommentWithAuthor{}},
	}
}

func (v *DetailView) State() DetailState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot()
}

func (v *DetailView) snapshot() DetailState {
	s := v.state
	if s.Post != nil {
		post := *s.Post
		s.Post = &post
	}
	if s.LastMutation != nil {
		m := *s.LastMutation
		s.LastMutation = &m
	}
	return s
}

func (v *DetailView) Load(ctx context.Context, slug string) DetailState {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state.Status = StatusLoading
	v.state.Error = ""
	v.state.Cause = nil
	v.mu.Unlock()

	post, comments, err := v.fetch(ctx, slug)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return v.snapshot()
	}
	if err != nil {
		v.state = DetailState{Status: StatusFailed, Comments: []model.CommentWithAuthor{}, Error: err.Error(), Cause: err}
		return v.snapshot()
	}
	v.state = DetailState{Status: StatusReady, Post: post, Comments: comments}
	return v.snapshot()
}

func (v *DetailView) fetch(ctx context.Context, slug string) (*model.BlogWithAuthor, []model.CommentWithAuthor, error) {
	post, err := v.svc.GetBlog(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	comments, err := v.svc.ListComments(ctx, post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load comments: %w", err)
	}
	return post, comments, nil
}

func (v *DetailView) loadedPost() (*model.BlogWithAuthor, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state.Status != StatusReady || v.state.Post == nil {
		return nil, false
	}
	post := *v.state.Post
	return &post, true
}

func (v *DetailView) record(m Mutation) Mutation {
	v.mu.Lock()
	v.state.LastMutation = &m
	v.mu.Unlock()
	return m
}

// Like increments the post's like counter server-side and adopts the returned count.
func (v *DetailView) Like(ctx context.Context) Mutation {
	const kind = "like"

	post, ok := v.loadedPost()
	if !ok {
		return v.record(failed(kind, ErrNotLoaded))
	}
	v.record(pending(kind))

	likes, err := v.svc.LikeBlog(ctx, post.ID)
	if err != nil {
		return v.record(failed(kind, err))
	}

	v.mu.Lock()
	if v.state.Post != nil && v.state.Post.ID == post.ID {
		v.state.Post.Likes = likes
	}
	v.mu.Unlock()

	return v.record(succeeded(kind))
}

// Comment appends a comment by actor and re-fetches the comment set.
func (v *DetailView) Comment(ctx context.Context, actor model.Actor, content string) Mutation {
	const kind = "comment"

	post, ok := v.loadedPost()
	if !ok {
		return v.record(failed(kind, ErrNotLoaded))
	}
	v.record(pending(kind))

	if _, err := v.svc.AddComment(ctx, actor, post.ID, model.CommentRequest{Content: content}); err != nil {
		return v.record(failed(kind, err))
	}

	comments, err := v.svc.ListComments(ctx, post.ID)
	if err != nil {
		return v.record(failed(kind, fmt.Errorf("comment saved, reload failed: %w", err)))
	}

	v.mu.Lock()
	v.state.Comments = comments
	v.mu.Unlock()

	return v.record(succeeded(kind))
}
