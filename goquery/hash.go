package goquery

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// FallbackID derives a deterministic post ID from its visible fields.
// It is used when no structural identifier can be resolved.
func FallbackID(author, timestamp, text string) string {
	h := xxhash.Sum64String(author + "|" + timestamp + "|" + text)
	return fmt.Sprintf("fb_%016x", h)
}
