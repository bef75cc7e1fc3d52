package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/internal/domains/auth/repository"
	"bloghub-backend/internal/domains/auth/session"
	"bloghub-backend/pkg/jwt"
)

type authService struct {
	repo        repository.Repository
	sessions    *session.Manager
	tokens      *jwt.Manager
	adminEmails map[string]struct{}
	cost        int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService tạo auth service. adminEmails được promote thành admin khi sign-up/sign-in.
func NewAuthService(
	repo repository.Repository,
	sessions *session.Manager,
	tokens *jwt.Manager,
	adminEmails []string,
) Service {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = model.NormalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}

	return &authService{
		repo:        repo,
		sessions:    sessions,
		tokens:      tokens,
		adminEmails: admins,
		cost:        bcrypt.DefaultCost,
	}
}

func (s *authService) isAdminEmail(email string) bool {
	_, ok := s.adminEmails[email]
	return ok
}

// ========================================
// SIGN UP
// ========================================

func (s *authService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.AuthResponse, error) {
	email := model.NormalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validation.Errors{"password": err}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id := uuid.New()
	var fullName *string
	if name := strings.TrimSpace(req.FullName); name != "" {
		fullName = &name
	}

	profile := &model.Profile{
		ID:       id,
		Email:    email,
		FullName: fullName,
		IsAdmin:  s.isAdminEmail(email),
	}
	account := &model.Account{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateAccount(ctx, account, profile); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", id.String()).Bool("is_admin", profile.IsAdmin).Msg("Account created")

	return s.openSession(ctx, *profile)
}

// ========================================
// SIGN IN
// ========================================

func (s *authService) SignIn(ctx context.Context, req model.SignInRequest) (*model.AuthResponse, error) {
	email := model.NormalizeEmail(req.Email)

	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			// same bcrypt work as a real mismatch
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if s.isAdminEmail(email) {
		if err := s.repo.SetAdmin(ctx, account.ID, true); err != nil {
			return nil, fmt.Errorf("promote admin: %w", err)
		}
	}

	profile, err := s.repo.GetProfile(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return s.openSession(ctx, *profile)
}

func (s *authService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("bloghub-dummy-password"), s.cost)
	})
	return s.dummyHash
}

func (s *authService) openSession(ctx context.Context, profile model.Profile) (*model.AuthResponse, error) {
	sess, err := s.sessions.Open(ctx, profile)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(profile.ID.String(), sess.ID, sess.ExpiresAt)
	if err != nil {
		_ = s.sessions.Close(ctx, sess)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &model.AuthResponse{
		AccessToken: token,
		ExpiresAt:   sess.ExpiresAt,
		Profile:     sess.Profile,
	}, nil
}

// ========================================
// SIGN OUT / AUTHENTICATE
// ========================================

func (s *authService) SignOut(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return model.ErrUnauthenticated
	}
	return s.sessions.Close(ctx, sess)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	sess, err := s.sessions.Resolve(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID.String() != claims.UserID {
		return nil, model.ErrInvalidToken
	}

	// is_admin có thể đổi phía backend bất cứ lúc nào
	profile, err := s.repo.GetProfile(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	return s.sessions.Refresh(ctx, sess, *profile)
}
