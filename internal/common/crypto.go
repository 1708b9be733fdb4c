package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateToken returns a 256-bit random secret as 64 lowercase hex chars.
// Session, refresh, verification and reset tokens all use this shape.
func GenerateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// MustGenerateToken panics on entropy failure. Running without a working
// system RNG is not survivable for an auth server.
func MustGenerateToken() string {
	token, err := GenerateToken()
	if err != nil {
		panic(fmt.Errorf("failed to generate random token: %w", err))
	}
	return token
}

// TokenPrefix is the only form of a secret allowed into logs.
func TokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "…"
}
