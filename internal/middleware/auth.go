package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/session"
)

// DefaultErrorKey is the JSON field rejections are written under.
const DefaultErrorKey = "msg"

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Invalid token"
	msgServerError      = "Server error"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// TokenParser verifies a raw token and returns its identity and the time
// left before it expires.
type TokenParser interface {
	Parse(raw string) (auth.Identity, time.Duration, error)
}

type AuthMiddleware struct {
	Store    session.Store
	Tokens   TokenParser
	ErrorKey string
}

func NewAuthMiddleware(store session.Store, tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{Store: store, Tokens: tokens, ErrorKey: DefaultErrorKey}
}

// WithErrorKey returns a copy that writes rejections under key, for route
// families whose errors use a different field.
func (a *AuthMiddleware) WithErrorKey(key string) *AuthMiddleware {
	cp := *a
	cp.ErrorKey = key
	return &cp
}

func (a *AuthMiddleware) reject(w http.ResponseWriter, status int, msg string) {
	key := a.ErrorKey
	if key == "" {
		key = DefaultErrorKey
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{key: msg})
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read token cookie
		raw := session.TokenFromRequest(r)
		if raw == "" {
			a.reject(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}

		// 2. Cached identity
		id, ok, err := a.Store.Get(r.Context(), raw)
		if err != nil {
			logger.Error("session cache read failed", map[string]any{
				"error": err,
				"key":   session.Key(raw)[:16],
			})
			a.reject(w, http.StatusInternalServerError, msgServerError)
			return
		}

		// 3. Verify and re-cache on miss. The entry must not outlive the token.
		if !ok {
			var left time.Duration
			id, left, err = a.Tokens.Parse(raw)
			if err != nil || left <= 0 {
				a.reject(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			if err := a.Store.Put(r.Context(), raw, id, left); err != nil {
				logger.Warn("session re-cache failed", map[string]any{
					"error":   err,
					"user_id": id.ID,
				})
			}
		}

		// 4. Attach identity to context
		ctx := context.WithValue(r.Context(), identityKey, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
