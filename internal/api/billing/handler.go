package billing

import (
	stripeinfra "gomeraway-api/internal/infra/stripe"

	"go.uber.org/zap"
)

// PriceLookup maps a normalised plan key to its configured processor price.
type PriceLookup func(planType string) (string, bool)

type Handler struct {
	gateway  stripeinfra.Gateway
	prices   PriceLookup
	siteURL  string
	currency string
	log      *zap.Logger
}

func NewHandler(gateway stripeinfra.Gateway, prices PriceLookup, siteURL string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		gateway:  gateway,
		prices:   prices,
		siteURL:  siteURL,
		currency: "eur",
		log:      log,
	}
}
