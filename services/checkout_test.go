package services

import (
	"testing"

	"github.com/HSouheill/lifelessons_backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertPrice(t *testing.T) {
	tests := []struct {
		name  string
		local float64
		rate  float64
		want  int64
	}{
		{"default premium price", 1500, 120, 1250},
		{"rounds half cents", 1000, 3, 33333},
		{"identity rate", 9.99, 1, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertPrice(tt.local, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ConvertPrice(1500, 0)
	assert.Error(t, err)
	_, err = ConvertPrice(-1, 120)
	assert.Error(t, err)
}

func TestNewCheckoutSession(t *testing.T) {
	cfg := &config.Config{
		ClientURL:          "https://lessons.app",
		PremiumPriceLocal:  1500,
		ExchangeRate:       120,
		SettlementCurrency: "usd",
	}

	session, err := NewCheckoutSession(cfg, "65f0c0ffee0000000000abcd", "Patience", "buyer@lessons.app")
	require.NoError(t, err)

	assert.Equal(t, int64(1250), session.Amount)
	assert.Equal(t, "usd", session.Currency)
	assert.Equal(t, "https://lessons.app/payment/success?session_id={CHECKOUT_SESSION_ID}&lessonId=65f0c0ffee0000000000abcd", session.SuccessURL)
	assert.Equal(t, "https://lessons.app/payment/cancel?lessonId=65f0c0ffee0000000000abcd", session.CancelURL)
	assert.Equal(t, map[string]string{"lessonId": "65f0c0ffee0000000000abcd", "email": "buyer@lessons.app"}, session.Metadata)
}

func TestNewCheckoutProvider(t *testing.T) {
	t.Run("stripe", func(t *testing.T) {
		provider, err := NewCheckoutProvider(&config.Config{PaymentProvider: "stripe", StripeSecretKey: "sk_test_123"})
		require.NoError(t, err)
		assert.IsType(t, &StripeCheckout{}, provider)
	})

	t.Run("stripe without key", func(t *testing.T) {
		_, err := NewCheckoutProvider(&config.Config{PaymentProvider: "stripe"})
		assert.Error(t, err)
	})

	t.Run("whish", func(t *testing.T) {
		provider, err := NewCheckoutProvider(&config.Config{
			PaymentProvider: "whish",
			WhishBaseURL:    "https://whish.test/api",
			WhishChannel:    "100",
			WhishSecret:     "s3cret",
			WhishWebsiteURL: "lessons.app",
		})
		require.NoError(t, err)
		assert.IsType(t, &WhishService{}, provider)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewCheckoutProvider(&config.Config{PaymentProvider: "paypal"})
		assert.Error(t, err)
	})
}
