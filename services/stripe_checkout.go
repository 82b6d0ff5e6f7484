package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/HSouheill/lifelessons_backend/models"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeCheckout creates Stripe Checkout sessions
type StripeCheckout struct {
	api *client.API
}

// NewStripeCheckout creates a Stripe client. A nil backend uses Stripe's API.
func NewStripeCheckout(secretKey string, backend stripe.Backend) (*StripeCheckout, error) {
	if secretKey == "" {
		return nil, errors.New("STRIPE_SECRET_KEY environment variable is required")
	}

	var backends *stripe.Backends
	if backend != nil {
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	return &StripeCheckout{api: client.New(secretKey, backends)}, nil
}

func (s *StripeCheckout) CreateSession(ctx context.Context, session models.CheckoutSession) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(session.SuccessURL),
		CancelURL:          stripe.String(session.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(session.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(session.LessonTitle),
					},
					UnitAmount: stripe.Int64(session.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	if session.Email != "" {
		params.CustomerEmail = stripe.String(session.Email)
	}
	for k, v := range session.Metadata {
		params.AddMetadata(k, v)
	}

	created, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe checkout session: %w", err)
	}
	if created.URL == "" {
		return "", errors.New("stripe checkout session has no url")
	}
	return created.URL, nil
}
