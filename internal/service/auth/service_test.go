package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/auth"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/user"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (user.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func newTestAuthService(repo *fakeUserRepo) auth.AuthService {
	jwtService := jwt.NewJWTService("test-secret-key", "15m", "168h")
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return NewAuthService(repo, jwtService, clock.Fixed(now))
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	tokens, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	loggedIn, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loggedIn.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	req := auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "short",
		Role:     "admin",
	})
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	tokens, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The old refresh token is revoked by rotation.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	tokens, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	tokens, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestLoginWithGoogleLinksByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "admin@example.com",
		Password: "supersecret",
		Role:     "admin",
	})
	require.NoError(t, err)

	tokens, err := svc.LoginWithGoogle(context.Background(), "google-123", "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	// Linked now: a second sign-in resolves by Google ID.
	linked, err := repo.GetByGoogleID(context.Background(), "google-123")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", linked.Email)
}

func TestLoginWithGoogleUnknownAccount(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.LoginWithGoogle(context.Background(), "google-999", "nobody@example.com")
	assert.ErrorIs(t, err, auth.ErrGoogleNotLinked)
}
