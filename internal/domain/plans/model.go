package plans

// CatalogEntry is what GET /plans exposes for one plan.
type CatalogEntry struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	MaxListings   int    `json:"max_listings"`
	IsUnlimited   bool   `json:"is_unlimited"`
	StripePriceID string `json:"stripe_price_id,omitempty"`
}

var displayNames = map[string]string{
	PlanBasico:   "Básico",
	PlanPremium:  "Premium",
	PlanDiamante: "Diamante",
}

// Catalog lists every plan. priceFor resolves the configured Stripe price.
func Catalog(priceFor func(string) (string, bool)) []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(listingLimits))
	for _, key := range Keys() {
		max := MaxListings(key)
		entry := CatalogEntry{
			Key:         key,
			Name:        displayNames[key],
			MaxListings: max,
			IsUnlimited: max == Unlimited,
		}
		if entry.IsUnlimited {
			entry.MaxListings = DisplayUnlimited
		}
		if priceFor != nil {
			if price, ok := priceFor(key); ok {
				entry.StripePriceID = price
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
