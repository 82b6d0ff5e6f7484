package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"github.com/HSouheill/lifelessons_backend/config"
	"github.com/HSouheill/lifelessons_backend/models"
)

// CheckoutProvider creates a hosted payment session and returns its redirect URL
type CheckoutProvider interface {
	CreateSession(ctx context.Context, session models.CheckoutSession) (string, error)
}

// ConvertPrice converts a local-currency price into minor units of the
// settlement currency. rate is local units per one settlement unit.
func ConvertPrice(localPrice, rate float64) (int64, error) {
	if localPrice <= 0 || rate <= 0 {
		return 0, errors.New("price and exchange rate must be positive")
	}
	return int64(math.Round(localPrice / rate * 100)), nil
}

// NewCheckoutSession prices a lesson purchase and templates the callback URLs
func NewCheckoutSession(cfg *config.Config, lessonID, lessonTitle, email string) (models.CheckoutSession, error) {
	amount, err := ConvertPrice(cfg.PremiumPriceLocal, cfg.ExchangeRate)
	if err != nil {
		return models.CheckoutSession{}, err
	}

	escapedID := url.QueryEscape(lessonID)
	return models.CheckoutSession{
		LessonID:    lessonID,
		LessonTitle: lessonTitle,
		Email:       email,
		Amount:      amount,
		Currency:    cfg.SettlementCurrency,
		// {CHECKOUT_SESSION_ID} is substituted by the provider
		SuccessURL: fmt.Sprintf("%s/payment/success?session_id={CHECKOUT_SESSION_ID}&lessonId=%s", cfg.ClientURL, escapedID),
		CancelURL:  fmt.Sprintf("%s/payment/cancel?lessonId=%s", cfg.ClientURL, escapedID),
		Metadata: map[string]string{
			"lessonId": lessonID,
			"email":    email,
		},
	}, nil
}

// NewCheckoutProvider selects the configured payment provider
func NewCheckoutProvider(cfg *config.Config) (CheckoutProvider, error) {
	switch cfg.PaymentProvider {
	case "stripe", "":
		return NewStripeCheckout(cfg.StripeSecretKey, nil)
	case "whish":
		return NewWhishService(cfg.WhishBaseURL, cfg.WhishChannel, cfg.WhishSecret, cfg.WhishWebsiteURL, nil)
	default:
		return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", cfg.PaymentProvider)
	}
}
