package service

import (
	"context"
	"fmt"

	"bloghub-backend/internal/domains/blog/model"
	"bloghub-backend/internal/shared/utils"
)

const DefaultSlugAttempts = 1000

type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// SlugResolver tìm slug chưa dùng: base, base-1, base-2, ...
type SlugResolver struct {
	checker     SlugChecker
	maxAttempts int
}

func NewSlugResolver(checker SlugChecker, maxAttempts int) *SlugResolver {
	if maxAttempts < 1 {
		maxAttempts = DefaultSlugAttempts
	}
	return &SlugResolver{checker: checker, maxAttempts: maxAttempts}
}

// Resolve checks at most maxAttempts candidates. Backend errors abort the loop.
func (r *SlugResolver) Resolve(ctx context.Context, title string) (string, error) {
	base := utils.GenerateSlug(title)

	candidate := base
	for n := 1; n <= r.maxAttempts; n++ {
		exists, err := r.checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}

	return "", fmt.Errorf("%w: %q after %d attempts", model.ErrSlugExhausted, base, r.maxAttempts)
}
