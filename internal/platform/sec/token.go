// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a hex-encoded random token of byteLength bytes.
//
// Used for refresh sessions and single-use tokens stored in Redis. The token
// itself carries no structure; possession is the only credential.
func GenerateSecureToken(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
