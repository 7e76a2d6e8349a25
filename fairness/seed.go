package fairness

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	ServerSeedBytes = 32
	NonceBytes      = 16
)

// NewServerSeed returns a fresh secret server seed (32 random bytes, hex).
func NewServerSeed() (string, error) {
	return randomHex(ServerSeedBytes)
}

// NewNonce returns a fresh public round nonce (16 random bytes, hex).
func NewNonce() (string, error) {
	return randomHex(NonceBytes)
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("fairness: read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
