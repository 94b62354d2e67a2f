package schemacheck

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/validation"
)

func validBody() map[string]any {
	return map[string]any{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "correct horse",
		"phone":    "9876543210",
		"rating":   3,
		"date":     "2025-01-22",
	}
}

type response struct {
	Message string                  `json:"message"`
	Data    map[string]any          `json:"data"`
	Errors  []validation.FieldError `json:"errors"`
}

func post(t *testing.T, body any) (int, response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewHandler(validation.New()).RegisterRoutes(r.Group("/api"))

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(http.MethodPost, "/api/testing", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestTesting_Valid(t *testing.T) {
	body := validBody()
	body["extra"] = "dropped"

	code, resp := post(t, body)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Validation successful", resp.Message)
	assert.Equal(t, float64(3), resp.Data["rating"])
	assert.Equal(t, "admin", resp.Data["type"])
	assert.Equal(t, "2025-01-22T00:00:00Z", resp.Data["date"])
	assert.NotContains(t, resp.Data, "extra")
	assert.NotContains(t, resp.Data, "address")
	assert.NotContains(t, resp.Data, "age")
}

func TestTesting_RatingOutOfSet(t *testing.T) {
	body := validBody()
	body["rating"] = 6

	code, resp := post(t, body)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Equal(t, []validation.FieldError{
		{Field: "rating", Message: "rating must be of 1,2,3,4 or 5"},
	}, resp.Errors)
}

func TestTesting_CollectsEveryFailure(t *testing.T) {
	code, resp := post(t, map[string]any{
		"name":  "Al",
		"email": "nope",
		"phone": "12345",
		"type":  "owner",
		"date":  "2025-02-01",
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []validation.FieldError{
		{Field: "name", Message: "minimum length of 3 is required"},
		{Field: "email", Message: "Invalid email"},
		{Field: "password", Message: "password is required"},
		{Field: "phone", Message: "Phone number must be exactly 10 digits"},
		{Field: "type", Message: "It must be either 'admin' or 'user'"},
		{Field: "rating", Message: "rating is required"},
		{Field: "date", Message: "Date must be before 2025-01-25"},
	}, resp.Errors)
}

func TestTesting_CoercesStrings(t *testing.T) {
	body := validBody()
	body["rating"] = "5"
	body["age"] = "31"
	body["type"] = "user"
	body["address"] = "Panaji"

	code, resp := post(t, body)
	require.Equal(t, http.StatusOK, code, resp.Errors)
	assert.Equal(t, float64(5), resp.Data["rating"])
	assert.Equal(t, float64(31), resp.Data["age"])
	assert.Equal(t, "user", resp.Data["type"])
	assert.Equal(t, "Panaji", resp.Data["address"])
}

func TestTesting_TypeErrors(t *testing.T) {
	body := validBody()
	body["age"] = "old"
	body["date"] = "someday"
	body["name"] = map[string]any{"first": "Asha"}

	code, resp := post(t, body)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []validation.FieldError{
		{Field: "name", Message: "name must be a `string` type"},
		{Field: "age", Message: "age must be a `number` type"},
		{Field: "date", Message: "date must be a `date` type"},
	}, resp.Errors)
}

func TestTesting_NotAnObject(t *testing.T) {
	for _, body := range []string{`[1,2]`, `"x"`, `{`, `null`} {
		code, resp := post(t, body)
		assert.Equal(t, http.StatusBadRequest, code, body)
		require.Len(t, resp.Errors, 1, body)
		assert.Equal(t, "body", resp.Errors[0].Field)
	}
}

func TestCheck_DateForms(t *testing.T) {
	v := validation.New()
	want := time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC)

	for _, in := range []any{"2025-01-23", "2025-01-23T00:00:00Z", "2025-01-23T00:00:00.000Z", float64(want.UnixMilli())} {
		body := validBody()
		body["date"] = in

		reg, res := Check(v, body)
		assert.True(t, res.OK(), "%v: %v", in, res.Errors)
		require.NotNil(t, reg.Date)
		assert.True(t, want.Equal(*reg.Date), in)
	}
}

func TestCheck_NullIsMissing(t *testing.T) {
	body := validBody()
	body["rating"] = nil
	body["type"] = nil

	reg, res := Check(validation.New(), body)
	assert.Equal(t, "admin", reg.Type)
	assert.Equal(t, []validation.FieldError{{Field: "rating", Message: "rating is required"}}, res.Errors)
}
