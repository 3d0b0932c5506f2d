package xid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// New returns an opaque identifier of the form "<prefix>-<random>". Callers
// treat ids as strings at every boundary regardless of the store backend.
func New(prefix string) string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ToLower(encoding.EncodeToString(buf)))
}
