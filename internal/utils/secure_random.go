package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Keccak256Hex hashes the concatenated parts and returns a 0x-prefixed hex digest.
func Keccak256Hex(parts ...[]byte) string {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// NewContractAddress returns a random 20-byte address in the usual 0x form. It stands in for
// the address of a pool contract; the treasury never interprets it.
func NewContractAddress() (string, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	digest := Keccak256Hex(seed)
	// last 20 bytes of the digest, as for account addresses
	return "0x" + digest[len(digest)-40:], nil
}
