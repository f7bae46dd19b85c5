package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"golang.org/x/text/currency"
)

type StripeGateway struct {
	sessions      session.Client
	webhookSecret string
}

// NewStripeGateway talks to the Stripe API through backend, or the default
// API backend when backend is nil.
func NewStripeGateway(secretKey, webhookSecret string, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}

	return &StripeGateway{
		sessions:      session.Client{B: backend, Key: secretKey},
		webhookSecret: webhookSecret,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, req domain.PaymentSessionRequest) (domain.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency.String())),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail:     stripe.String(req.PayerEmail),
		ClientReferenceID: stripe.String(req.CorrelationRef),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("sessions.New: %w", err)
	}

	return domain.PaymentSession{ID: s.ID, URL: s.URL}, nil
}

// ParseEvent verifies the Stripe-Signature header and maps checkout session
// events. A session counts as completed once its payment is collected, which
// for delayed payment methods is the async_payment_succeeded event.
func (g *StripeGateway) ParseEvent(payload []byte, signature string) (domain.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return domain.PaymentEvent{}, fmt.Errorf("%w: %w", domain.ErrBadSignature, err)
	}

	result := domain.PaymentEvent{
		ID:   event.ID,
		Type: domain.PaymentEventType(event.Type),
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
	default:
		return result, nil
	}

	if event.Data == nil {
		return domain.PaymentEvent{}, fmt.Errorf("%w: event[%s] has no data", domain.ErrBadEvent, event.ID)
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return domain.PaymentEvent{}, fmt.Errorf("%w: json.Unmarshal: %w", domain.ErrBadEvent, err)
	}

	if s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		result.Type = domain.PaymentEventCompleted
	}

	result.SessionID = s.ID
	result.CorrelationRef = s.ClientReferenceID
	result.AmountTotal = s.AmountTotal
	result.Metadata = s.Metadata

	result.PayerEmail = s.CustomerEmail
	if result.PayerEmail == "" && s.CustomerDetails != nil {
		result.PayerEmail = s.CustomerDetails.Email
	}

	if s.Currency != "" {
		cur, err := currency.ParseISO(strings.ToUpper(string(s.Currency)))
		if err != nil {
			return domain.PaymentEvent{}, fmt.Errorf("%w: currency[%s] is not valid: %w", domain.ErrBadEvent, s.Currency, err)
		}
		result.Currency = cur
	}

	return result, nil
}
