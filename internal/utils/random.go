package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomString returns a URL-safe string carrying the given number of random bytes.
func RandomString(bytes int) string {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		panic("utils: crypto/rand unavailable: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
