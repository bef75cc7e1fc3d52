package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloghub-backend/internal/domains/auth/model"
)

// MemoryRepository is the STORE_DRIVER=memory implementation.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]model.Account // by email
	profiles map[uuid.UUID]model.Profile
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]model.Account),
		profiles: make(map[uuid.UUID]model.Profile),
		now:      time.Now,
	}
}

var _ Repository = (*MemoryRepository)(nil)

func (r *MemoryRepository) CreateAccount(_ context.Context, account *model.Account, profile *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Email]; exists {
		return model.ErrEmailTaken
	}

	now := r.now()
	account.CreatedAt = now
	profile.CreatedAt = now
	r.accounts[account.Email] = *account
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *MemoryRepository) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[email]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) GetProfile(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) SetAdmin(_ context.Context, id uuid.UUID, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return model.ErrProfileNotFound
	}
	p.IsAdmin = isAdmin
	r.profiles[id] = p
	return nil
}
