// Package identity derives stable identifiers for tokenizers, groupers and
// extractors. Identifiers feed cache keys, so they must not depend on map
// iteration order or process state.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Digest returns a 32-character hex digest of text.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}

// Describe renders name(args...) the way every component describes itself.
func Describe(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ","))
}

// SetDigest digests a set of strings independently of their order.
func SetDigest(items []string) string {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	return Digest(strings.Join(sorted, "\x00"))
}
