package payment

import (
	"context"
	"sync"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProcessor implements Processor on Stripe Checkout sessions.
// The underlying client is built lazily once and reused across requests;
// it holds no per-request state.
type StripeProcessor struct {
	secretKey string
	currency  string

	once sync.Once
	api  *client.API
}

func NewStripeProcessor(secretKey, currency string) *StripeProcessor {
	if currency == "" {
		currency = "usd"
	}
	return &StripeProcessor{secretKey: secretKey, currency: currency}
}

func (p *StripeProcessor) client() *client.API {
	p.once.Do(func() {
		p.api = &client.API{}
		p.api.Init(p.secretKey, nil)
	})
	return p.api
}

func (p *StripeProcessor) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	for _, line := range req.Lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		if line.Description != "" {
			product.Description = stripe.String(line.Description)
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(line.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(p.currency),
				UnitAmount:  stripe.Int64(line.UnitAmountCents),
				ProductData: product,
			},
		})
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.client().CheckoutSessions.New(params)
	if err != nil {
		return Session{}, err
	}
	return fromStripe(s), nil
}

func (p *StripeProcessor) GetSession(ctx context.Context, sessionID string) (Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.client().CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return Session{}, err
	}
	return fromStripe(s), nil
}

func fromStripe(s *stripe.CheckoutSession) Session {
	out := Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		SessionStatus: string(s.Status),
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
