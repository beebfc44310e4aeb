// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package auth

import (
	"context"
	"time"
)

// UserRepository abstracts persistence for user accounts.
type UserRepository interface {
	// Create persists a new user. The implementation must surface unique
	// violations on username or email as a Conflict error.
	Create(ctx context.Context, user *User) error

	// FindByID retrieves a user by primary key.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByLogin retrieves a user by username or email (case insensitive).
	FindByLogin(ctx context.Context, login string) (*User, error)
}

// SessionRepository abstracts refresh session storage.
//
// Sessions are opaque tokens mapped to a user ID with a TTL. Rotation on
// refresh invalidates the old token atomically from the caller's view.
type SessionRepository interface {
	// Save stores a refresh token for the user with the given lifetime.
	Save(ctx context.Context, token, userID string, ttl time.Duration) error

	// Resolve returns the user ID bound to the token, or NotFound.
	Resolve(ctx context.Context, token string) (string, error)

	// Delete removes a refresh token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
