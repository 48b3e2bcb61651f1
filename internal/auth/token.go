package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashToken hashes a token for storage. Only the hash ever touches the
// database, so a leaked sessions table cannot be replayed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ExtractTokenFromBearer extracts the token from an Authorization header.
func ExtractTokenFromBearer(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
