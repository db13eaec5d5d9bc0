package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives the per-user prefix objects are stored under. The
// prefix is truncated to 32 hex characters to keep storage keys short.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:16])
}
