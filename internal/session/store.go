package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth"
)

// Store caches the identity behind a token so check-auth can skip
// verification. Entries are an accelerator only: a miss falls back to
// verifying the token itself.
type Store interface {
	Put(ctx context.Context, token string, id auth.Identity, ttl time.Duration) error
	// Get returns ok=false on a miss.
	Get(ctx context.Context, token string) (id auth.Identity, ok bool, err error)
	Delete(ctx context.Context, token string) error
}

// Key is the cache key for token. Login, check-auth and logout all derive
// it here so writes and reads agree. Only the signature segment is hashed;
// it is unique per signed payload.
func Key(token string) string {
	sig := token
	if i := strings.LastIndexByte(token, '.'); i >= 0 {
		sig = token[i+1:]
	}
	sum := sha256.Sum256([]byte(sig))
	return keyPrefix + hex.EncodeToString(sum[:])
}

const keyPrefix = "auth:"
