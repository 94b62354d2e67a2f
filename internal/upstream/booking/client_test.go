package booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	path    string
	query   url.Values
	headers http.Header
}

func newServer(t *testing.T, status int, body string) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, recorded{path: r.URL.Path, query: r.URL.Query(), headers: r.Header.Clone()})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient("key-123", "booking-com15.p.rapidapi.com", srv.URL+"/api/v1/hotels/", 5*time.Second), &calls
}

func ptr(s string) *string { return &s }

func TestSearchDestination_StringAndNumericIDs(t *testing.T) {
	c, calls := newServer(t, http.StatusOK, `{"status":true,"data":[{"dest_id":"-2092174","name":"Pune","search_type":"city"},{"dest_id":1234,"name":"Goa"}]}`)

	dests, err := c.SearchDestination(context.Background(), "pune")
	require.NoError(t, err)
	require.Len(t, dests, 2)
	assert.Equal(t, "-2092174", dests[0].DestID)
	assert.Equal(t, "1234", dests[1].DestID)

	require.Len(t, *calls, 1)
	got := (*calls)[0]
	assert.Equal(t, "/api/v1/hotels/searchDestination", got.path)
	assert.Equal(t, "pune", got.query.Get("query"))
	assert.Equal(t, "key-123", got.headers.Get("x-rapidapi-key"))
	assert.Equal(t, "booking-com15.p.rapidapi.com", got.headers.Get("x-rapidapi-host"))
}

func TestFirstDestID(t *testing.T) {
	_, err := FirstDestID(nil)
	assert.ErrorIs(t, err, ErrNoDestination)

	_, err = FirstDestID([]Destination{{Name: "no id"}})
	assert.ErrorIs(t, err, ErrNoDestination)

	id, err := FirstDestID([]Destination{{DestID: "7"}, {DestID: "8"}})
	require.NoError(t, err)
	assert.Equal(t, "7", id)
}

func TestSearchHotels_Params(t *testing.T) {
	c, calls := newServer(t, http.StatusOK, `{"data":{"hotels":[]}}`)

	body, err := c.SearchHotels(context.Background(), HotelSearch{
		DestID:        "-2092174",
		ArrivalDate:   "2025-02-01",
		DepartureDate: "2025-02-03",
		Adults:        ptr("2"),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"hotels":[]}}`, string(body))

	q := (*calls)[0].query
	assert.Equal(t, "/api/v1/hotels/searchHotels", (*calls)[0].path)
	assert.Equal(t, "-2092174", q.Get("dest_id"))
	assert.Equal(t, "CITY", q.Get("search_type"))
	assert.Equal(t, "2025-02-01", q.Get("arrival_date"))
	assert.Equal(t, "2025-02-03", q.Get("departure_date"))
	assert.Equal(t, "2", q.Get("adults"))
	assert.False(t, q.Has("children_age"))
	assert.False(t, q.Has("room_qty"))
	assert.Equal(t, "1", q.Get("page_number"))
	assert.Equal(t, "metric", q.Get("units"))
	assert.Equal(t, "c", q.Get("temperature_unit"))
	assert.Equal(t, "en-us", q.Get("languagecode"))
	assert.Equal(t, "INR", q.Get("currency_code"))
}

func TestHotelDetailsAndPhotos(t *testing.T) {
	c, calls := newServer(t, http.StatusOK, `{"data":{}}`)

	_, err := c.HotelDetails(context.Background(), "191605", "2025-02-01", "2025-02-03")
	require.NoError(t, err)
	_, err = c.HotelPhotos(context.Background(), "191605")
	require.NoError(t, err)

	require.Len(t, *calls, 2)
	assert.Equal(t, "/api/v1/hotels/getHotelDetails", (*calls)[0].path)
	assert.Equal(t, "191605", (*calls)[0].query.Get("hotel_id"))
	assert.Equal(t, "2025-02-03", (*calls)[0].query.Get("departure_date"))
	assert.Equal(t, "/api/v1/hotels/getHotelPhotos", (*calls)[1].path)
}

func TestNonSuccessStatus(t *testing.T) {
	c, _ := newServer(t, http.StatusTooManyRequests, `{"message":"rate limited"}`)

	_, err := c.HotelPhotos(context.Background(), "1")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
	assert.Equal(t, "getHotelPhotos", se.Endpoint)
	assert.Contains(t, se.Body, "rate limited")
}

func TestMalformedDestinationBody(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `<html>`)

	_, err := c.SearchDestination(context.Background(), "pune")
	assert.Error(t, err)
}

func TestContextCancelled(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.HotelPhotos(ctx, "1")
	assert.ErrorIs(t, err, context.Canceled)
}
