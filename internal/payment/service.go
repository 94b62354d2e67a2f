// Package payment brokers checkout-session creation and caches the
// resulting URL per hotel and price.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/apperr"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/cache"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/upstream/payments"
)

const (
	msgInvalidPrice = "Invalid price provided."
	msgBelowMinimum = "Minimum payment amount is ₹50."
)

type Checkout interface {
	CreateSession(ctx context.Context, req payments.CheckoutRequest) (string, error)
}

type Service struct {
	checkout  Checkout
	cache     cache.Cache
	ttl       time.Duration
	normalize PriceNormalizer
}

func NewService(checkout Checkout, c cache.Cache, ttl time.Duration, normalize PriceNormalizer) *Service {
	return &Service{
		checkout:  checkout,
		cache:     c,
		ttl:       ttl,
		normalize: normalize,
	}
}

func SessionKey(hotelName string, price Price) string {
	return cache.Key("stripeSession", hotelName, price.Raw)
}

// CreateCheckoutSession returns a hosted checkout URL for hotelName at price.
// The same hotel and price text reuse one URL while it is cached.
func (s *Service) CreateCheckoutSession(ctx context.Context, hotelName string, price Price) (string, error) {
	if !price.Valid || price.Value == 0 {
		return "", apperr.Validation(msgInvalidPrice)
	}

	amount, ok := s.normalize(price.Value)
	if !ok {
		return "", apperr.Validation(msgInvalidPrice)
	}
	if amount < MinimumMinorUnits {
		return "", apperr.Validation(msgBelowMinimum)
	}

	key := SessionKey(hotelName, price)

	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", map[string]any{"key": key, "error": err})
	}
	if hit {
		return string(cached), nil
	}

	url, err := s.checkout.CreateSession(ctx, payments.CheckoutRequest{
		ProductName: hotelName,
		UnitAmount:  amount,
	})
	if err != nil {
		var pe *payments.ProviderError
		if errors.As(err, &pe) {
			return "", apperr.Payment(pe.Message, err)
		}
		return "", apperr.Payment(err.Error(), err)
	}

	if err := s.cache.Set(ctx, key, []byte(url), s.ttl); err != nil {
		logger.Warn("cache write failed", map[string]any{"key": key, "error": err})
	}

	logger.Info("checkout session created", map[string]any{
		"hotel":  hotelName,
		"amount": amount,
	})

	return url, nil
}
