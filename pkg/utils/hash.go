package utils

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// PostingID derives a collision-tolerant id for a posting from its URL, title
// and company. Stable across runs so retried saves land on the same key.
func PostingID(url, title, company string) string {
	h := fnv.New64a()
	h.Write([]byte(strings.TrimSpace(url)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(title))))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(company))))
	return fmt.Sprintf("%016x", h.Sum64())
}
