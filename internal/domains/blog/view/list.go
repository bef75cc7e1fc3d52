package view

import (
	"context"
	"sync"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/domains/blog/service"
	"bloghub-backend/internal/shared/utils"
)

type ListState struct {
	Status Status           `json:"status"`
	Posts  []model.ListItem `json:"posts"`
	Error  string           `json:"error,omitempty"`
	Cause  error            `json:"-"`
}

// ListView holds every post, newest first.
type ListView struct {
	svc service.Service

	mu    sync.RWMutex
	state ListState
	gen   uint64
}

func NewListView(svc service.Service) *ListView {
	return &ListView{
		svc:   svc,
		state: ListState{Status: StatusLoading, Posts: []model.ListItem{}},
	}
}

func (v *ListView) State() ListState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Load fetches all posts. A load superseded by a newer one is discarded.
func (v *ListView) Load(ctx context.Context) ListState {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.state.Status = StatusLoading
	v.state.Error = ""
	v.state.Cause = nil
	v.mu.Unlock()

	blogs, err := v.svc.ListBlogs(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return v.state
	}
	if err != nil {
		v.state = ListState{Status: StatusFailed, Posts: []model.ListItem{}, Error: err.Error(), Cause: err}
		return v.state
	}
	v.state = ListState{Status: StatusReady, Posts: toListItems(blogs)}
	return v.state
}

func toListItems(blogs []model.BlogWithAuthor) []model.ListItem {
	items := make([]model.ListItem, 0, len(blogs))
	for _, b := range blogs {
		items = append(items, model.ListItem{
			BlogWithAuthor: b,
			Preview:        utils.Preview(b.Excerpt, b.Content),
		})
	}
	return items
}
