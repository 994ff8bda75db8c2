package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lowercase hex-encoded SHA-256 digest of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
