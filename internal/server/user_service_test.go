package server

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amine/orientation-platform/internal/config"
	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/types"
)

// fakeDBClient is an in-memory DBClient for unit tests.
type fakeDBClient struct {
	usersByID    map[uuid.UUID]*db.User
	usersByEmail map[string]*db.User
}

func newFakeDBClient() *fakeDBClient {
	return &fakeDBClient{
		usersByID:    make(map[uuid.UUID]*db.User),
		usersByEmail: make(map[string]*db.User),
	}
}

func (f *fakeDBClient) CreateUser(_ context.Context, username, email, passwordHash, role string) (uuid.UUID, error) {
	user := &db.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.usersByID[user.ID] = user
	f.usersByEmail[email] = user
	return user.ID, nil
}

func (f *fakeDBClient) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.usersByID[userID], nil
}

func (f *fakeDBClient) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	return f.usersByEmail[email], nil
}

func (f *fakeDBClient) CheckEmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.usersByEmail[email]
	return ok, nil
}

func (f *fakeDBClient) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if user, ok := f.usersByID[userID]; ok {
		user.PasswordHash = passwordHash
	}
	return nil
}

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{
		BcryptCost: 10, // Lower cost for faster tests
		Pepper:     "",
	}
}

func TestUserService_Register(t *testing.T) {
	svc := NewUserService(newFakeDBClient(), testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "amina", user.Username)
	assert.Equal(t, "amina@example.com", user.Email)
	assert.Equal(t, db.RoleStudent, user.Role, "new accounts default to student")
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	client := newFakeDBClient()
	svc := NewUserService(client, testPasswordConfig())

	req := &types.RegisterRequest{Username: "amina", Email: "amina@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	var dup *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &dup)
}

func TestUserService_Register_PasswordNotStoredInPlaintext(t *testing.T) {
	client := newFakeDBClient()
	svc := NewUserService(client, testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	stored := client.usersByID[user.ID]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestUserService_Login(t *testing.T) {
	client := newFakeDBClient()
	svc := NewUserService(client, testPasswordConfig())

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "amina", user.Username)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	client := newFakeDBClient()
	svc := NewUserService(client, testPasswordConfig())

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "amina@example.com",
		Password: "wrong-password",
	})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc := NewUserService(newFakeDBClient(), testPasswordConfig())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_UpdatePassword(t *testing.T) {
	client := newFakeDBClient()
	svc := NewUserService(client, testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	err = svc.UpdatePassword(context.Background(), user.ID, "password123", "newpassword456")
	require.NoError(t, err)

	// Old password no longer works
	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "amina@example.com",
		Password: "password123",
	})
	assert.Error(t, err)

	// New password does
	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "amina@example.com",
		Password: "newpassword456",
	})
	assert.NoError(t, err)
}

func TestUserService_UpdatePassword_WrongCurrent(t *testing.T) {
	client := newFakeDBClient()
	svc := NewUserService(client, testPasswordConfig())

	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		Username: "amina",
		Email:    "amina@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	err = svc.UpdatePassword(context.Background(), user.ID, "wrong-password", "newpassword456")
	var mismatch *ErrPasswordMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestUserService_UpdatePassword_UnknownUser(t *testing.T) {
	svc := NewUserService(newFakeDBClient(), testPasswordConfig())

	err := svc.UpdatePassword(context.Background(), uuid.New(), "password123", "newpassword456")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}
