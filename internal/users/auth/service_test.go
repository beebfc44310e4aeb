// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/sec"
	"github.com/edura-app/edura/internal/users/auth"
)

// # Test Fakes

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("An account with this username or email already exists")
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Username, login) || strings.EqualFold(user.Email, login) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]string // token -> userID
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]string)}
}

func (r *fakeSessionRepository) Save(_ context.Context, token, userID string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = userID
	return nil
}

func (r *fakeSessionRepository) Resolve(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if userID, ok := r.sessions[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Session")
}

func (r *fakeSessionRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(users, sessions, stubTokenProvider{}, logger)
	return service, users, sessions
}

// # Registration

/*
TestService_Register verifies account creation, default role assignment,
and role restrictions for self-registration.
*/
func TestService_Register(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{
		Username:    "minh",
		Email:       "minh@example.com",
		Password:    "correct-horse",
		DisplayName: "Minh",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleStudent, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestService_Register_MentorRole(t *testing.T) {
	service, _, _ := newTestService()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "prof",
		Email:    "prof@example.com",
		Password: "correct-horse",
		Role:     "mentor",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleMentor, user.Role)
}

func TestService_Register_RejectsAdminRole(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "sneaky",
		Email:    "sneaky@example.com",
		Password: "correct-horse",
		Role:     "admin",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_Register_DuplicateConflict(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	input := auth.RegisterInput{
		Username: "minh",
		Email:    "minh@example.com",
		Password: "correct-horse",
	}
	_, err := service.Register(ctx, input)
	require.NoError(t, err)

	_, err = service.Register(ctx, input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// # Authentication

/*
TestService_Login covers the credential verification and session issuance flow.
*/
func TestService_Login(t *testing.T) {
	service, _, sessions := newTestService()
	ctx := context.Background()

	user, err := service.Register(ctx, auth.RegisterInput{
		Username: "minh",
		Email:    "minh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	session, err := service.Login(ctx, auth.LoginInput{Login: "minh", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-for-"+user.ID, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// The refresh token must resolve back to the user.
	resolved, err := sessions.Resolve(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved)
}

func TestService_Login_ByEmail(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "minh",
		Email:    "minh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Login: "minh@example.com", Password: "correct-horse"})
	assert.NoError(t, err)
}

func TestService_Login_WrongPassword(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "minh",
		Email:    "minh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, auth.LoginInput{Login: "minh", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestService_Login_UnknownUser(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Login(context.Background(), auth.LoginInput{Login: "ghost", Password: "whatever"})
	require.Error(t, err)

	// Same generic code as a wrong password, so accounts cannot be enumerated.
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

// # Session Rotation

/*
TestService_RefreshSession verifies refresh token rotation: the old token is
consumed and a new one is issued.
*/
func TestService_RefreshSession(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "minh",
		Email:    "minh@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	session, err := service.Login(ctx, auth.LoginInput{Login: "minh", Password: "correct-horse"})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Replaying the consumed token must fail.
	_, err = service.RefreshSession(ctx, session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestService_Logout_Idempotent(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	assert.NoError(t, service.Logout(ctx, "never-issued"))
	assert.NoError(t, service.Logout(ctx, ""))
}
