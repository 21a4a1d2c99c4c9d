package plans

import "strings"

// Plan keys (single source of truth)
const (
	PlanBasico   = "básico"
	PlanPremium  = "premium"
	PlanDiamante = "diamante"
)

// Unlimited marks a plan without a listing cap. DisplayUnlimited is what the
// UI shows as the max for such plans; it is not a real cap.
const (
	Unlimited        = -1
	DisplayUnlimited = 999
)

var listingLimits = map[string]int{
	PlanBasico:   1,
	PlanPremium:  5,
	PlanDiamante: Unlimited,
}

// Normalize lower-cases and trims a plan name. The unaccented "basico" is
// accepted as an alias of "básico".
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "basico" {
		return PlanBasico
	}
	return n
}

// IsKnown reports whether name is one of the three sold plans.
func IsKnown(name string) bool {
	_, ok := listingLimits[Normalize(name)]
	return ok
}

// MaxListings returns the configured active-listing cap for a plan.
// Unrecognized plans get 0.
func MaxListings(name string) int {
	return listingLimits[Normalize(name)]
}

// Keys returns the plan keys from cheapest to most expensive.
func Keys() []string {
	return []string{PlanBasico, PlanPremium, PlanDiamante}
}
