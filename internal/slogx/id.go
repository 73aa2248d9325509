package slogx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// maxRequestIDLen bounds a client supplied request id.
const maxRequestIDLen = 64

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRequestID returns a lexicographically sortable ULID.
func NewRequestID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), idEntropy).String()
}

// ValidRequestID reports whether a client supplied id may be reused: a ULID,
// or up to 64 letters, digits, '-' and '_'.
func ValidRequestID(id string) bool {
	if _, err := ulid.ParseStrict(id); err == nil {
		return true
	}
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
