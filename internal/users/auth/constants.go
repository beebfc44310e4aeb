// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package auth

import "time"

// Token lifetimes and entropy sizes for the authentication flows.
const (
	// AccessTokenTTL is intentionally short. Clients are expected to rotate
	// via the refresh endpoint.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL bounds how long an idle session survives in Redis.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token
	// before hex encoding.
	RefreshTokenLength = 32
)

// Validation bounds for registration input.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 32
	PasswordMinLength = 8
	PasswordMaxLength = 72 // bcrypt truncates beyond 72 bytes
)
