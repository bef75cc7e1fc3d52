package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/internal/infrastructure/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateAccount(ctx context.Context, account *model.Account, profile *model.Profile) error {
	return database.ExecuteInTransaction(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO profiles (id, email, full_name, is_admin)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, profile.ID, profile.Email, profile.FullName, profile.IsAdmin).Scan(&profile.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO auth_accounts (id, email, password_hash)
			VALUES ($1, $2, $3)
			RETURNING created_at
		`, account.ID, account.Email, account.PasswordHash).Scan(&account.CreatedAt)
		if err != nil {
			if database.IsUniqueViolation(err, "auth_accounts_email_key") {
				return model.ErrEmailTaken
			}
			return fmt.Errorf("insert account: %w", err)
		}
		return nil
	})
}

func (r *postgresRepository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var a model.Account
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM auth_accounts
		WHERE email = $1
	`, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, full_name, is_admin, created_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Email, &p.FullName, &p.IsAdmin, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE profiles SET is_admin = $2 WHERE id = $1`, id, isAdmin)
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}
