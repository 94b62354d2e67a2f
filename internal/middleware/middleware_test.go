package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/auth"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/session"
)

var asha = auth.Identity{ID: "65a0c0ffee0000000000abcd", Username: "Asha", Email: "asha@example.com"}

type fakeStore struct {
	entries map[string]auth.Identity
	ttls    map[string]time.Duration
	getErr  error
	putErr  error
	puts    int
}

func (f *fakeStore) Put(_ context.Context, token string, id auth.Identity, ttl time.Duration) error {
	f.puts++
	f.ttls[token] = ttl
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[token] = id
	return nil
}

func (f *fakeStore) Get(_ context.Context, token string) (auth.Identity, bool, error) {
	if f.getErr != nil {
		return auth.Identity{}, false, f.getErr
	}
	id, ok := f.entries[token]
	return id, ok, nil
}

func (f *fakeStore) Delete(_ context.Context, token string) error {
	delete(f.entries, token)
	return nil
}

type fakeParser struct {
	valid map[string]auth.Identity
	left  time.Duration
	calls int
}

func (f *fakeParser) Parse(raw string) (auth.Identity, time.Duration, error) {
	f.calls++
	id, ok := f.valid[raw]
	if !ok {
		return auth.Identity{}, 0, errors.New("bad token")
	}
	return id, f.left, nil
}

func setup() (*gin.Engine, *fakeStore, *fakeParser) {
	gin.SetMode(gin.TestMode)

	store := &fakeStore{entries: map[string]auth.Identity{}, ttls: map[string]time.Duration{}}
	parser := &fakeParser{valid: map[string]auth.Identity{"good": asha}, left: time.Hour}

	r := gin.New()
	r.Use(GinRequireAuth(NewAuthMiddleware(store, parser)))
	r.GET("/me", func(c *gin.Context) {
		id, ok := IdentityFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id})
	})
	return r, store, parser
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func msg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["msg"]
}

func TestRequireAuth_NoCookie(t *testing.T) {
	r, _, parser := setup()

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authenticated", msg(t, w))
	assert.Zero(t, parser.calls)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r, store, _ := setup()

	w := get(r, "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", msg(t, w))
	assert.Zero(t, store.puts)
}

func TestRequireAuth_VerifiesThenCaches(t *testing.T) {
	r, store, parser := setup()

	w := get(r, "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":{"id":"65a0c0ffee0000000000abcd","username":"Asha","email":"asha@example.com"}}`, w.Body.String())
	assert.Equal(t, 1, parser.calls)
	assert.Equal(t, asha, store.entries["good"])

	w = get(r, "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, parser.calls)
}

func TestRequireAuth_RecacheNeverOutlivesToken(t *testing.T) {
	r, store, parser := setup()
	parser.left = 90 * time.Second

	w := get(r, "good")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 90*time.Second, store.ttls["good"])
}

func TestRequireAuth_NoTimeLeftIsRejected(t *testing.T) {
	r, store, parser := setup()
	parser.left = 0

	w := get(r, "good")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", msg(t, w))
	assert.Zero(t, store.puts)
}

func TestRequireAuth_CacheHitSkipsVerification(t *testing.T) {
	r, store, parser := setup()
	store.entries["cached-only"] = asha

	w := get(r, "cached-only")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, parser.calls)
}

func TestRequireAuth_CacheReadFailure(t *testing.T) {
	r, store, _ := setup()
	store.getErr = errors.New("connection refused")

	w := get(r, "good")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error", msg(t, w))
}

func TestRequireAuth_RecacheFailureStillPasses(t *testing.T) {
	r, store, _ := setup()
	store.putErr = errors.New("read only replica")

	w := get(r, "good")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_ErrorKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := NewAuthMiddleware(&fakeStore{entries: map[string]auth.Identity{}}, &fakeParser{})

	r := gin.New()
	r.GET("/msg", GinRequireAuth(base), func(c *gin.Context) {})
	r.GET("/error", GinRequireAuth(base.WithErrorKey("error")), func(c *gin.Context) {})

	for path, body := range map[string]string{
		"/msg":   `{"msg":"Not authenticated"}`,
		"/error": `{"error":"Not authenticated"}`,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, body, w.Body.String(), path)
	}
	assert.Equal(t, DefaultErrorKey, base.ErrorKey)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
