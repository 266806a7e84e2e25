package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// ArtifactKey returns the key for the artifact produced by engine from source.
// format distinguishes outputs of the same run, e.g. "pdf". inputs carries
// everything else the output depends on: engine arguments and digests of the
// files the source reads.
func ArtifactKey(engine, format string, source []byte, inputs ...string) string {
	return hashKey("artifact", engine, format, Hash(source), inputs)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
