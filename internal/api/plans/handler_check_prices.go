package plans

import (
	"context"
	"net/http"

	"gomeraway-api/internal/domain/plans"
	stripeinfra "gomeraway-api/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PriceSource interface {
	Price(ctx context.Context, id string) (*stripeinfra.Price, error)
}

type Handler struct {
	prices PriceSource
	lookup func(planType string) (string, bool)
	log    *zap.Logger
}

func NewHandler(prices PriceSource, lookup func(string) (string, bool), log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{prices: prices, lookup: lookup, log: log}
}

type PriceCheck struct {
	Key        string  `json:"key"`
	PriceID    string  `json:"price_id,omitempty"`
	Configured bool    `json:"configured"`
	Found      bool    `json:"found"`
	Active     bool    `json:"active"`
	Recurring  bool    `json:"recurring"`
	Currency   string  `json:"currency,omitempty"`
	AmountEUR  float64 `json:"amount_eur,omitempty"`
	Product    string  `json:"product,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// ok is what a sellable plan price must satisfy: active, recurring, in EUR.
func (p PriceCheck) ok() bool {
	return p.Configured && p.Found && p.Active && p.Recurring && p.Currency == "eur"
}

// CheckPrices looks every configured plan price up on Stripe.
func (h *Handler) CheckPrices(c *gin.Context) {
	checks := make([]PriceCheck, 0, len(plans.Keys()))
	allOK := true

	for _, key := range plans.Keys() {
		check := PriceCheck{Key: key}
		priceID, configured := h.lookup(key)
		check.PriceID = priceID
		check.Configured = configured

		if configured {
			p, err := h.prices.Price(c.Request.Context(), priceID)
			if err != nil {
				h.log.Warn("stripe price lookup failed", zap.String("plan", key), zap.String("price_id", priceID), zap.Error(err))
				check.Error = err.Error()
			} else {
				check.Found = true
				check.Active = p.Active
				check.Recurring = p.Interval != ""
				check.Currency = p.Currency
				check.AmountEUR = float64(p.UnitAmount) / 100.0
				check.Product = p.ProductName
			}
		}

		allOK = allOK && check.ok()
		checks = append(checks, check)
	}

	c.JSON(http.StatusOK, gin.H{"ok": allOK, "plans": checks})
}
