// Package property proxies hotel search, details and photos through a
// cache-aside layer.
package property

import (
	"context"
	"errors"
	"time"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/cache"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/upstream/booking"
)

const (
	msgSearchRequired  = "Query, arrival_date, and departure_date are required."
	msgNoDestination   = "Destination not found."
	msgSearchFailed    = "Error fetching data. Please try again later."
	msgDetailsRequired = "hotel_id, arrival_date, and departure_date are required."
	msgDetailsFailed   = "Error fetching hotel details. Please try again later."
	msgPhotosRequired  = "hotel_id is required."
	msgPhotosFailed    = "Error fetching hotel photos. Please try again later."
)

// Provider is the hotel-search upstream.
type Provider interface {
	SearchDestination(ctx context.Context, query string) ([]booking.Destination, error)
	SearchHotels(ctx context.Context, s booking.HotelSearch) ([]byte, error)
	HotelDetails(ctx context.Context, hotelID, arrival, departure string) ([]byte, error)
	HotelPhotos(ctx context.Context, hotelID string) ([]byte, error)
}

// SearchQuery mirrors the get-properties query string. Nil means absent.
type SearchQuery struct {
	Query         string
	ArrivalDate   string
	DepartureDate string
	Adults        *string
	ChildrenAge   *string
	RoomQty       *string
}

type Service struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
}

func NewService(provider Provider, c cache.Cache, ttl time.Duration) *Service {
	return &Service{provider: provider, cache: c, ttl: ttl}
}

func SearchKey(q SearchQuery) string {
	return cache.Key("properties",
		q.Query,
		q.ArrivalDate,
		q.DepartureDate,
		cache.Optional(q.Adults),
		cache.Optional(q.ChildrenAge),
		cache.Optional(q.RoomQty),
	)
}

func DetailsKey(hotelID, arrival, departure string) string {
	return cache.Key("hotelDetails", hotelID, arrival, departure)
}

func PhotosKey(hotelID string) string {
	return cache.Key("hotelPhotos", hotelID)
}

// SearchProperties resolves q.Query to a destination and returns the hotel
// search body for it.
func (s *Service) SearchProperties(ctx context.Context, q SearchQuery) ([]byte, error) {
	if q.Query == "" || q.ArrivalDate == "" || q.DepartureDate == "" {
		return nil, apperr.Validation(msgSearchRequired)
	}

	return s.cached(ctx, SearchKey(q), func() ([]byte, error) {
		dests, err := s.provider.SearchDestination(ctx, q.Query)
		if err != nil {
			return nil, apperr.Upstream(msgSearchFailed, err)
		}

		destID, err := booking.FirstDestID(dests)
		if errors.Is(err, booking.ErrNoDestination) {
			return nil, apperr.NotFound(msgNoDestination)
		}

		body, err := s.provider.SearchHotels(ctx, booking.HotelSearch{
			DestID:        destID,
			ArrivalDate:   q.ArrivalDate,
			DepartureDate: q.DepartureDate,
			Adults:        q.Adults,
			ChildrenAge:   q.ChildrenAge,
			RoomQty:       q.RoomQty,
		})
		if err != nil {
			return nil, apperr.Upstream(msgSearchFailed, err)
		}
		return body, nil
	})
}

func (s *Service) HotelDetails(ctx context.Context, hotelID, arrival, departure string) ([]byte, error) {
	if hotelID == "" || arrival == "" || departure == "" {
		return nil, apperr.Validation(msgDetailsRequired)
	}

	return s.cached(ctx, DetailsKey(hotelID, arrival, departure), func() ([]byte, error) {
		body, err := s.provider.HotelDetails(ctx, hotelID, arrival, departure)
		if err != nil {
			return nil, apperr.Upstream(msgDetailsFailed, err)
		}
		return body, nil
	})
}

func (s *Service) HotelPhotos(ctx context.Context, hotelID string) ([]byte, error) {
	if hotelID == "" {
		return nil, apperr.Validation(msgPhotosRequired)
	}

	return s.cached(ctx, PhotosKey(hotelID), func() ([]byte, error) {
		body, err := s.provider.HotelPhotos(ctx, hotelID)
		if err != nil {
			return nil, apperr.Upstream(msgPhotosFailed, err)
		}
		return body, nil
	})
}

// cached serves key from the cache or stores what fetch returns. Cache
// failures degrade to a plain upstream call.
func (s *Service) cached(ctx context.Context, key string, fetch func() ([]byte, error)) ([]byte, error) {
	body, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", map[string]any{"key": key, "error": err})
	}
	if hit {
		logger.Debug("cache hit", map[string]any{"key": key})
		return body, nil
	}

	body, err = fetch()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
		logger.Warn("cache write failed", map[string]any{"key": key, "error": err})
	}
	return body, nil
}
