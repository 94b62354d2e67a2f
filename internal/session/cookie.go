package session

import (
	"net/http"
	"time"
)

// CookieName is the cookie the browser client sends on every request.
const CookieName = "token"

type CookieOptions struct {
	Path     string
	Domain   string
	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// DefaultCookieOptions is HttpOnly, SameSite=Strict on "/"; secure adds the
// Secure flag.
func DefaultCookieOptions(secure bool) CookieOptions {
	return CookieOptions{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// The token cookie is never readable from script and never sent cross-site.
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/"
	}
	o.HttpOnly = true
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteStrictMode
	}
	return o
}

func (o CookieOptions) cookie(value string, maxAge int) *http.Cookie {
	o = o.normalize()
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   maxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
}

// SetCookie stores token in the client for ttl.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration, opts CookieOptions) {
	http.SetCookie(w, opts.cookie(token, int(ttl.Seconds())))
}

func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, opts.cookie("", -1))
}

// TokenFromRequest returns the token cookie value, or "" when absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
