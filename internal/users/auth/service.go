// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/sec"
	"github.com/edura-app/edura/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an error if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new authentication Service with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string

	// Role is optional. Empty defaults to student; only student and mentor
	// are accepted through self-registration, admins are seeded out of band.
	Role string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, handling password hashing and role
assignment. Uniqueness of username and email is enforced by database
constraints rather than a pre-check, so concurrent registrations cannot race.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Resolve the requested role. Self-registration never grants admin.
	role := sec.RoleStudent
	switch input.Role {
	case "", string(sec.RoleStudent):
		role = sec.RoleStudent
	case string(sec.RoleMentor):
		role = sec.RoleMentor
	default:
		return nil, apperr.ValidationError("Role must be either student or mentor")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         role,
	}

	// Persist the user. The repository maps unique violations to Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and establishes a new refresh session in Redis.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Flexible login: the repository resolves username or email.
	// Generic message on failure to prevent account enumeration.
	user, err := service.userRepository.FindByLogin(context, input.Login)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Constant-time comparison in bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Generate short-lived Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived opaque Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if err := service.sessionRepository.Save(context, refreshToken, user.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
Logout permanently invalidates the user's active refresh session.

Description: Idempotent. Deleting an unknown or already expired token is
treated as a successful logout.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := service.sessionRepository.Delete(context, refreshToken); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, deletes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {

	// Resolve the token. Failure means expired, rotated out, or forged.
	userID, err := service.sessionRepository.Resolve(context, refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: delete the old session to prevent replay attacks.
	if err := service.sessionRepository.Delete(context, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_rotate_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	newRefreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_secure_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if err := service.sessionRepository.Save(context, newRefreshToken, user.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
Profile returns the account for an authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}
