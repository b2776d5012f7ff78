// Package identity derives stable content-addressed identifiers for
// discovered companies.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Length is the number of hex characters kept from the digest. Sixteen hex
// characters (64 bits) keep the collision probability negligible for the
// few thousand records a discovery run produces.
const Length = 16

// New returns the identity for a (name, website) pair. The key is the
// lowercased, trimmed name joined to the lowercased, trimmed website with a
// pipe, hashed with SHA-256 and truncated. The same pair always yields the
// same identity across processes and runs.
func New(name, website string) string {
	key := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(website))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:Length]
}
