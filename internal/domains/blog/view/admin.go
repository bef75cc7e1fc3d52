package view

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
)

type AdminState struct {
	Status       Status           `json:"status"`
	Posts        []model.ListItem `json:"posts"`
	Error        string           `json:"error,omitempty"`
	Cause        error            `json:"-"`
	LastMutation *Mutation        `json:"last_mutation,omitempty"`
}

// AdminView lists all posts and runs create/update/delete, re-fetching after each.
type AdminView struct {
	svc   service.Service
	actor model.Actor

	mu    sync.RWMutex
	state AdminState
	gen   uint64
}

// NewAdminView refuses non-admin actors.
func NewAdminView(svc service.Service, actor model.Actor) (*AdminView, error) {
	if !actor.IsAdmin {
		return nil, model.ErrAdminRequired
	}
	return &AdminView{
		svc:   svc,
		actor: actor,
		state: AdminState{Status: StatusLoading, Posts: []model.ListItem{}},
	}, nil
}

func (v *AdminView) State() AdminState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	s := v.state
	if s.LastMutation != nil {
		m := *s.LastMutation
		s.LastMutation = &m
	}
	return s
}

func (v *AdminView) Load(ctx context.Context) AdminState {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state.Status = StatusLoading
	v.state.Error = ""
	v.state.Cause = nil
	v.mu.Unlock()

	blogs, err := v.svc.ListBlogs(ctx)

	v.mu.Lock()
	if gen == v.gen {
		if err != nil {
			v.state.Status = StatusFailed
			v.state.Posts = []model.ListItem{}
			v.state.Error = err.Error()
			v.state.Cause = err
		} else {
			v.state.Status = StatusReady
			v.state.Posts = toListItems(blogs)
		}
	}
	v.mu.Unlock()

	return v.State()
}

func (v *AdminView) record(m Mutation) Mutation {
	v.mu.Lock()
	v.state.LastMutation = &m
	v.mu.Unlock()
	return m
}

// finish records the result and reloads the list on success.
func (v *AdminView) finish(ctx context.Context, m Mutation) Mutation {
	v.record(m)
	if m.Status == MutationSuccess {
		v.Load(ctx)
	}
	return m
}

func (v *AdminView) Create(ctx context.Context, req model.BlogRequest) Mutation {
	const kind = "create"
	v.record(pending(kind))

	b, err := v.svc.CreateBlog(ctx, v.actor, req)
	if err != nil {
		return v.finish(ctx, failed(kind, err))
	}
	m := succeeded(kind)
	m.Blog = b
	return v.finish(ctx, m)
}

// Update never changes the slug.
func (v *AdminView) Update(ctx context.Context, id uuid.UUID, req model.BlogRequest) Mutation {
	const kind = "update"
	v.record(pending(kind))

	b, err := v.svc.UpdateBlog(ctx, v.actor, id, req)
	if err != nil {
		return v.finish(ctx, failed(kind, err))
	}
	m := succeeded(kind)
	m.Blog = b
	return v.finish(ctx, m)
}

// Delete requires confirmed=true.
func (v *AdminView) Delete(ctx context.Context, id uuid.UUID, confirmed bool) Mutation {
	const kind = "delete"
	if !confirmed {
		return v.record(failed(kind, model.ErrConfirmationRequired))
	}
	v.record(pending(kind))

	if err := v.svc.DeleteBlog(ctx, v.actor, id); err != nil {
		return v.finish(ctx, failed(kind, err))
	}
	return v.finish(ctx, succeeded(kind))
}
