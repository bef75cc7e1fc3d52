package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bloghub-backend/internal/domains/auth/model"
	"bloghub-backend/internal/domains/auth/repository"
	"bloghub-backend/internal/domains/auth/session"
	"bloghub-backend/internal/infrastructure/cache"
	"bloghub-backend/pkg/jwt"
)

type fixture struct {
	svc      *authService
	repo     *repository.MemoryRepository
	sessions *session.Manager

	mu     sync.Mutex
	events []session.EventType
}

func newFixture(t *testing.T, admins ...string) *fixture {
	t.Helper()

	repo := repository.NewMemoryRepository()
	sessions := session.NewManager(session.NewStore(cache.NewMemoryCache()), time.Hour)
	require.NoError(t, sessions.Start(context.Background()))

	svc := NewAuthService(repo, sessions, jwt.NewManager("test-secret"), admins).(*authService)
	svc.cost = bcrypt.MinCost

	f := &fixture{svc: svc, repo: repo, sessions: sessions}
	sessions.Subscribe(func(ev session.Event) {
		f.mu.Lock()
		f.events = append(f.events, ev.Type)
		f.mu.Unlock()
	})
	return f
}

func (f *fixture) eventTypes() []session.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]session.EventType(nil), f.events...)
}

func TestSignUp_CreatesProfileAndSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.SignUp(ctx, model.SignUpRequest{
		Email: "  Reader@Example.com ", Password: "password123", FullName: "Reader",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "reader@example.com", resp.Profile.Email)
	assert.False(t, resp.Profile.IsAdmin)
	require.NotNil(t, resp.Profile.FullName)
	assert.Equal(t, "Reader", *resp.Profile.FullName)

	profile, err := f.repo.GetProfile(ctx, resp.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.ID, profile.ID)

	sess, err := f.svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Profile.ID, sess.UserID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := model.SignUpRequest{Email: "a@example.com", Password: "password123"}
	_, err := f.svc.SignUp(ctx, req)
	require.NoError(t, err)

	req.Email = "A@example.com"
	_, err = f.svc.SignUp(ctx, req)
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestSignUp_PasswordTooLongForBcrypt(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SignUp(context.Background(), model.SignUpRequest{
		Email: "long@example.com", Password: strings.Repeat("x", 100),
	})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "password")
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SignUp(ctx, model.SignUpRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	resp, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = f.svc.SignIn(ctx, model.SignInRequest{Email: "a@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = f.svc.SignIn(ctx, model.SignInRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAdminEmails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "Admin@Example.com")

	resp, err := f.svc.SignUp(ctx, model.SignUpRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, resp.Profile.IsAdmin)
}

func TestAuthenticate_PicksUpProfileChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.SignUp(ctx, model.SignUpRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, f.repo.SetAdmin(ctx, resp.Profile.ID, true))

	sess, err := f.svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())

	_, err = f.svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, []session.EventType{session.EventSignedIn, session.EventProfileChanged}, f.eventTypes())
}

func TestSignOut_InvalidatesToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.SignUp(ctx, model.SignUpRequest{Email: "a@example.com", Password: "password123"})
	require.NoError(t, err)

	sess, err := f.svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(ctx, sess))

	_, err = f.svc.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	assert.Contains(t, f.eventTypes(), session.EventSignedOut)

	assert.ErrorIs(t, f.svc.SignOut(ctx, nil), model.ErrUnauthenticated)
}

func TestAuthenticate_BadToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestSignUpRequest_Validate(t *testing.T) {
	assert.Error(t, model.SignUpRequest{Email: "bad", Password: "password123"}.Validate())
	assert.Error(t, model.SignUpRequest{Email: "a@example.com", Password: "short"}.Validate())
	assert.NoError(t, model.SignUpRequest{Email: "a@example.com", Password: "password123"}.Validate())
}
