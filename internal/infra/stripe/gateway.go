package stripe

import (
	"context"
	"errors"

	stripeapi "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// CheckoutSession is the part of a processor checkout session callers need.
type CheckoutSession struct {
	ID  string
	URL string
}

// SubscriptionCheckout describes a recurring checkout for one price.
type SubscriptionCheckout struct {
	PriceID       string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// DepositCheckout describes a one-time payment of AmountCents.
type DepositCheckout struct {
	ProductName   string
	Description   string
	AmountCents   int64
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Gateway creates checkout sessions on the payment processor.
type Gateway interface {
	CreateSubscriptionCheckout(ctx context.Context, in SubscriptionCheckout) (*CheckoutSession, error)
	CreateDepositCheckout(ctx context.Context, in DepositCheckout) (*CheckoutSession, error)
}

// Client is the Stripe-backed Gateway. It holds its own API client instead of
// the package-global key.
type Client struct {
	api *client.API
}

func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

func (c *Client) CreateSubscriptionCheckout(ctx context.Context, in SubscriptionCheckout) (*CheckoutSession, error) {
	if in.PriceID == "" {
		return nil, errors.New("missing price id")
	}
	params := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModeSubscription)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{Price: stripeapi.String(in.PriceID), Quantity: stripeapi.Int64(1)},
		},
		SuccessURL: stripeapi.String(in.SuccessURL),
		CancelURL:  stripeapi.String(in.CancelURL),
		Metadata:   in.Metadata,
		SubscriptionData: &stripeapi.CheckoutSessionSubscriptionDataParams{
			Metadata: in.Metadata,
		},
	}
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(in.CustomerEmail)
	}
	if uid := in.Metadata["user_id"]; uid != "" {
		params.ClientReferenceID = stripeapi.String(uid)
	}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (c *Client) CreateDepositCheckout(ctx context.Context, in DepositCheckout) (*CheckoutSession, error) {
	if in.AmountCents <= 0 {
		return nil, errors.New("deposit amount must be positive")
	}
	currency := in.Currency
	if currency == "" {
		currency = string(stripeapi.CurrencyEUR)
	}

	product := &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripeapi.String(in.ProductName),
	}
	if in.Description != "" {
		product.Description = stripeapi.String(in.Description)
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripeapi.String(currency),
					ProductData: product,
					UnitAmount:  stripeapi.Int64(in.AmountCents),
				},
				Quantity: stripeapi.Int64(1),
			},
		},
		SuccessURL: stripeapi.String(in.SuccessURL),
		CancelURL:  stripeapi.String(in.CancelURL),
		Metadata:   in.Metadata,
	}
	if in.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(in.CustomerEmail)
	}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
