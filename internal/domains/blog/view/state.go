package view

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bloghub-backend/internal/domains/blog/model"
)

// Status of a view's last load.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

type MutationStatus string

const (
	MutationPending MutationStatus = "pending"
	MutationSuccess MutationStatus = "success"
	MutationFailed  MutationStatus = "failed"
)

// Mutation is the observable outcome of a write. Err keeps the cause for
// status mapping at the HTTP edge.
type Mutation struct {
	Kind   string         `json:"kind"`
	Status MutationStatus `json:"status"`
	Reason string         `json:"reason,omitempty"`
	Blog   *model.Blog    `json:"blog,omitempty"`
	Err    error          `json:"-"`
}

func pending(kind string) Mutation {
	return Mutation{Kind: kind, Status: MutationPending}
}

func succeeded(kind string) Mutation {
	return Mutation{Kind: kind, Status: MutationSuccess}
}

func failed(kind string, err error) Mutation {
	return Mutation{Kind: kind, Status: MutationFailed, Reason: reason(err), Err: err}
}

// ValidationErrors returns field errors when the mutation failed validation.
func (m Mutation) ValidationErrors() (validation.Errors, bool) {
	var verrs validation.Errors
	ok := errors.As(m.Err, &verrs)
	return verrs, ok
}

func reason(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

var ErrNotLoaded = errors.New("post is not loaded")
