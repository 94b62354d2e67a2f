// Package token issues and verifies the signed session tokens delivered in
// the auth cookie.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth"
)

var (
	ErrInvalidToken = errors.New("token: invalid")
	ErrTokenExpired = errors.New("token: expired")
)

// Claims carries the identity under the "tokenData" claim.
type Claims struct {
	jwt.RegisteredClaims
	TokenData auth.Identity `json:"tokenData"`
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Issuer)

// WithClock replaces time.Now for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret string, ttl time.Duration, opts ...Option) *Issuer {
	i := &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs an HS256 token for id that expires after the issuer's TTL.
// It also returns the lifetime actually signed, which is shorter than the
// TTL because exp is truncated to the second.
func (i *Issuer) Issue(id auth.Identity) (string, time.Duration, error) {
	now := i.now()
	exp := jwt.NewNumericDate(now.Add(i.ttl))
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: exp,
		},
		TokenData: id,
	})

	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", 0, fmt.Errorf("token: sign: %w", err)
	}
	return signed, exp.Sub(now), nil
}

// Parse verifies signature and expiry and returns the embedded identity
// with the time left before the token expires.
func (i *Issuer) Parse(raw string) (auth.Identity, time.Duration, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Identity{}, 0, ErrTokenExpired
		}
		return auth.Identity{}, 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !tok.Valid || claims.TokenData.ID == "" {
		return auth.Identity{}, 0, ErrInvalidToken
	}

	left := claims.ExpiresAt.Sub(i.now())
	if left <= 0 {
		return auth.Identity{}, 0, ErrTokenExpired
	}
	return claims.TokenData, left, nil
}
