// Package fairness implements the commitment scheme behind provably-fair rounds:
// a published commitment binds the server seed before the player picks a client
// seed, and the combined seed derived from all three values drives the outcome.
package fairness

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestHex returns the lowercase hex SHA-256 of the UTF-8 bytes of text.
func DigestHex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// CommitmentHash is published when a round is created: SHA256("serverSeed:nonce").
func CommitmentHash(serverSeed, nonce string) string {
	return DigestHex(serverSeed + ":" + nonce)
}

// CombinedSeed is SHA256("serverSeed:clientSeed:nonce"). Together with the drop
// column it fully determines a round's outcome.
func CombinedSeed(serverSeed, clientSeed, nonce string) string {
	return DigestHex(serverSeed + ":" + clientSeed + ":" + nonce)
}

// VerifyCommitment reports whether serverSeed and nonce hash to commitment.
func VerifyCommitment(serverSeed, nonce, commitment string) bool {
	return CommitmentHash(serverSeed, nonce) == commitment
}
