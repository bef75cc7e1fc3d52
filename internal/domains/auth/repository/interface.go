package repository

import (
	"context"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/auth/model"
)

// Repository quản lý auth_accounts và profiles
type Repository interface {
	// CreateAccount inserts the account and its profile atomically.
	// Returns model.ErrEmailTaken on a duplicate email.
	CreateAccount(ctx context.Context, account *model.Account, profile *model.Profile) error
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
}
