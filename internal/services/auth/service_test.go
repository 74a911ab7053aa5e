package auth

import (
	"context"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	repositories.UserRepository

	byEmail map[string]*models.User
	nextID  uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*models.User)}
}

func (f *fakeUsers) Create(user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repositories.ErrDuplicateKey
	}
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) GetByEmail(email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) IncrementTokenVersion(id uint) error {
	for _, user := range f.byEmail {
		if user.ID == id {
			user.TokenVersion++
			return nil
		}
	}
	return repositories.ErrUserNotFound
}

func registerReq() RegisterRequest {
	return RegisterRequest{
		Email:    "jo@example.com",
		Password: "hunter2hunter2",
		Name:     "Jo",
		Currency: "EUR",
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := newFakeUsers()
	svc := NewService(users)

	user, pair, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotZero(t, user.ID)

	// Password is stored hashed.
	assert.NotEqual(t, "hunter2hunter2", users.byEmail["jo@example.com"].Password)

	claims, err := utils.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(newFakeUsers())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, registerReq())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewService(newFakeUsers())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	user, pair, err := svc.Login(ctx, LoginRequest{Email: "jo@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, "Jo", user.Name)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "jo@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutBumpsTokenVersion(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	users := newFakeUsers()
	svc := NewService(users)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))
	assert.Equal(t, 1, users.byEmail["jo@example.com"].TokenVersion)
}
