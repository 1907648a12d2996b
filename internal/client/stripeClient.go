package client

import (
	"context"
	"encoding/json"
	"fmt"
	"storefront-demo/internal/config"

	"github.com/stripe/stripe-go/v82"
	stripeapi "github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

const EventChargeSucceeded = string(stripe.EventTypeChargeSucceeded)

type StripeClient interface {
	// CreatePaymentIntent opens a USD payment for one product.
	CreatePaymentIntent(ctx context.Context, amountInCents int64, productID string) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
	// ConstructEvent verifies the signature header against the raw payload
	// and decodes the event.
	ConstructEvent(payload []byte, signature string) (*PaymentEvent, error)
}

type PaymentIntent struct {
	ID            string
	ClientSecret  string
	AmountInCents int64
	Status        string
	ProductID     string
}

func (p *PaymentIntent) Succeeded() bool {
	return p.Status == string(stripe.PaymentIntentStatusSucceeded)
}

type PaymentEvent struct {
	ID     string
	Type   string
	Charge *Charge // only for charge.succeeded
}

type Charge struct {
	ID            string
	ProductID     string
	Email         string
	AmountInCents int64
}

type stripeClientImpl struct {
	api           *stripeapi.API
	webhookSecret string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	return &stripeClientImpl{
		api:           stripeapi.New(stripeCfg.SecretKey, nil),
		webhookSecret: stripeCfg.WebhookSecret,
	}
}

func (c *stripeClientImpl) CreatePaymentIntent(ctx context.Context, amountInCents int64, productID string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx
	params.AddMetadata("productId", productID)

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}

	return toPaymentIntent(pi), nil
}

func (c *stripeClientImpl) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get payment intent: %w", err)
	}

	return toPaymentIntent(pi), nil
}

func (c *stripeClientImpl) ConstructEvent(payload []byte, signature string) (*PaymentEvent, error) {
	return parseEvent(payload, signature, c.webhookSecret)
}

func parseEvent(payload []byte, signature, secret string) (*PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("construct stripe event: %w", err)
	}

	result := &PaymentEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if event.Type != stripe.EventTypeChargeSucceeded {
		return result, nil
	}
	if event.Data == nil {
		return nil, fmt.Errorf("stripe event %s has no data", event.ID)
	}

	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		return nil, fmt.Errorf("decode stripe charge: %w", err)
	}

	result.Charge = &Charge{
		ID:            charge.ID,
		ProductID:     charge.Metadata["productId"],
		AmountInCents: charge.Amount,
	}
	if charge.BillingDetails != nil {
		result.Charge.Email = charge.BillingDetails.Email
	}

	return result, nil
}

func toPaymentIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:            pi.ID,
		ClientSecret:  pi.ClientSecret,
		AmountInCents: pi.Amount,
		Status:        string(pi.Status),
		ProductID:     pi.Metadata["productId"],
	}
}
