// Package payments creates hosted checkout sessions with Stripe.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ProviderError carries the provider's own message for the caller.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return "payments: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

var ErrNoURL = errors.New("payments: session has no url")

// CheckoutRequest is one line item, quantity 1, paid by card.
type CheckoutRequest struct {
	ProductName string
	UnitAmount  int64 // minor units
}

type sessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type CheckoutClient struct {
	sessions   sessionCreator
	currency   string
	successURL string
	cancelURL  string
}

func NewCheckoutClient(secretKey, currency, successURL, cancelURL string) *CheckoutClient {
	sc := client.New(secretKey, nil)
	return newCheckoutClient(sc.CheckoutSessions, currency, successURL, cancelURL)
}

func newCheckoutClient(sessions sessionCreator, currency, successURL, cancelURL string) *CheckoutClient {
	return &CheckoutClient{
		sessions:   sessions,
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateSession returns the hosted checkout URL.
func (c *CheckoutClient) CreateSession(ctx context.Context, req CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
	}
	params.Context = ctx

	s, err := c.sessions.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Msg != "" {
			return "", &ProviderError{Message: se.Msg, Err: err}
		}
		return "", &ProviderError{Message: err.Error(), Err: err}
	}
	if s == nil || s.URL == "" {
		return "", fmt.Errorf("%w: %v", ErrNoURL, sessionID(s))
	}

	return s.URL, nil
}

func sessionID(s *stripe.CheckoutSession) string {
	if s == nil {
		return "<nil>"
	}
	return s.ID
}
