// Package booking is the HTTP client for the RapidAPI booking-com15 hotel
// provider. Response bodies are returned as received.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxBodyBytes = 16 << 20

var ErrNoDestination = errors.New("booking: destination lookup returned no dest_id")

// StatusError is a non-2xx provider reply.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("booking: %s returned %d: %s", e.Endpoint, e.Status, e.Body)
}

type Client struct {
	apiKey  string
	host    string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, host, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		host:    host,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type Destination struct {
	DestID     string `json:"dest_id"`
	Name       string `json:"name"`
	SearchType string `json:"search_type"`
}

// destID accepts the provider's dest_id as either a string or a number.
type destID string

func (d *destID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = destID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("booking: dest_id: %w", err)
	}
	*d = destID(n.String())
	return nil
}

type destinationResponse struct {
	Data []struct {
		DestID     destID `json:"dest_id"`
		Name       string `json:"name"`
		SearchType string `json:"search_type"`
	} `json:"data"`
}

// SearchDestination resolves a free-text query to provider destinations.
func (c *Client) SearchDestination(ctx context.Context, query string) ([]Destination, error) {
	body, err := c.get(ctx, "searchDestination", url.Values{"query": {query}})
	if err != nil {
		return nil, err
	}

	var resp destinationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("booking: decode searchDestination: %w", err)
	}

	out := make([]Destination, 0, len(resp.Data))
	for _, d := range resp.Data {
		out = append(out, Destination{
			DestID:     string(d.DestID),
			Name:       d.Name,
			SearchType: d.SearchType,
		})
	}
	return out, nil
}

// FirstDestID is the dest_id of the first result, or ErrNoDestination.
func FirstDestID(dests []Destination) (string, error) {
	if len(dests) == 0 || dests[0].DestID == "" {
		return "", ErrNoDestination
	}
	return dests[0].DestID, nil
}

// HotelSearch holds the searchHotels parameters. Nil optionals are left out
// of the request.
type HotelSearch struct {
	DestID        string
	ArrivalDate   string
	DepartureDate string
	Adults        *string
	ChildrenAge   *string
	RoomQty       *string
}

func (c *Client) SearchHotels(ctx context.Context, s HotelSearch) ([]byte, error) {
	params := url.Values{
		"dest_id":          {s.DestID},
		"search_type":      {"CITY"},
		"arrival_date":     {s.ArrivalDate},
		"departure_date":   {s.DepartureDate},
		"page_number":      {"1"},
		"units":            {"metric"},
		"temperature_unit": {"c"},
		"languagecode":     {"en-us"},
		"currency_code":    {"INR"},
	}
	setOptional(params, "adults", s.Adults)
	setOptional(params, "children_age", s.ChildrenAge)
	setOptional(params, "room_qty", s.RoomQty)

	return c.get(ctx, "searchHotels", params)
}

func (c *Client) HotelDetails(ctx context.Context, hotelID, arrival, departure string) ([]byte, error) {
	return c.get(ctx, "getHotelDetails", url.Values{
		"hotel_id":       {hotelID},
		"arrival_date":   {arrival},
		"departure_date": {departure},
	})
}

func (c *Client) HotelPhotos(ctx context.Context, hotelID string) ([]byte, error) {
	return c.get(ctx, "getHotelPhotos", url.Values{"hotel_id": {hotelID}})
}

func setOptional(v url.Values, key string, val *string) {
	if val != nil {
		v.Set(key, *val)
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u := c.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("booking: build %s request: %w", endpoint, err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("booking: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("booking: read %s body: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, &StatusError{Endpoint: endpoint, Status: resp.StatusCode, Body: snippet}
	}

	return body, nil
}
