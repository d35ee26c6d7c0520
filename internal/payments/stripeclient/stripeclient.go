// Package stripeclient wraps the Stripe payment-intent API.
package stripeclient

import (
	"fmt"
	"math"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Client creates payment intents with the configured secret key.
type Client struct{}

// New configures the Stripe SDK and returns a client.
func New(secretKey string) *Client {
	stripe.Key = secretKey
	return &Client{}
}

// CreateIntent creates a payment intent for the given price in dollars and
// returns its client secret. Stripe wants the amount in cents.
func (c *Client) CreateIntent(price float64) (string, error) {
	amount := int64(math.Round(price * 100))
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
