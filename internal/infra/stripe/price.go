package stripe

import (
	"context"

	stripeapi "github.com/stripe/stripe-go/v75"
)

// Price is the part of a processor price the admin checks look at.
type Price struct {
	ID          string
	Active      bool
	Currency    string
	UnitAmount  int64
	Interval    string
	ProductName string
}

// Price fetches one price with its product expanded.
func (c *Client) Price(ctx context.Context, id string) (*Price, error) {
	params := &stripeapi.PriceParams{}
	params.Context = ctx
	params.AddExpand("product")

	p, err := c.api.Prices.Get(id, params)
	if err != nil {
		return nil, err
	}

	out := &Price{
		ID:         p.ID,
		Active:     p.Active,
		Currency:   string(p.Currency),
		UnitAmount: p.UnitAmount,
	}
	if p.Recurring != nil {
		out.Interval = string(p.Recurring.Interval)
	}
	if p.Product != nil {
		out.ProductName = p.Product.Name
	}
	return out, nil
}
