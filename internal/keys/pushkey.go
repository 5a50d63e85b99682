// Package keys generates push keys for posts and comments. A push key is a
// ULID: 26 characters, unique, and lexicographically ordered by creation time,
// so sorting records by key replays them in append order.
package keys

import (
	crand "crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(crand.Reader, 0)
)

// New returns a fresh push key. Keys generated within the same millisecond
// still sort in generation order because the entropy source is monotonic.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Valid reports whether s parses as a push key.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
