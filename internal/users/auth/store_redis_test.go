// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edura-app/edura/internal/platform/constants"
)

// Session keys must live under the shared auth:session: namespace so
// operational tooling can scan and expire them alongside the other auth keys.
func TestSessionKey_UsesSessionPrefix(t *testing.T) {
	key := sessionKey("abc123")

	assert.Equal(t, constants.RedisPrefixSession+"abc123", key)
	assert.Equal(t, "auth:session:abc123", key)
}
