package plans

import (
	"testing"

	"gomeraway-api/internal/domain/billing"

	"github.com/stretchr/testify/assert"
)

func active(plan string) *billing.Subscription {
	return &billing.Subscription{UserID: "u1", Plan: plan, Status: billing.StatusActive}
}

func TestEvaluateWithoutActiveSubscription(t *testing.T) {
	cases := map[string]*billing.Subscription{
		"no row":   nil,
		"canceled": {UserID: "u1", Plan: PlanDiamante, Status: billing.StatusCanceled},
		"past due": {UserID: "u1", Plan: PlanPremium, Status: "past_due"},
	}

	for name, sub := range cases {
		for _, count := range []int{0, 1, 50} {
			d := Evaluate(sub, count)
			assert.False(t, d.CanCreate, name)
			assert.Equal(t, MessageNoSubscription, d.Message, name)
			assert.Equal(t, count, d.CurrentCount, name)
		}
	}
}

func TestEvaluateUnknownPlanFailsClosed(t *testing.T) {
	for _, plan := range []string{"gold", "", "free", "diamond"} {
		for _, count := range []int{0, 1, 3} {
			d := Evaluate(active(plan), count)
			assert.False(t, d.CanCreate, "plan %q count %d", plan, count)
			assert.Equal(t, 0, d.MaxAllowed)
			assert.False(t, d.IsUnlimited)
		}
	}
}

func TestEvaluateUnlimitedPlan(t *testing.T) {
	for _, count := range []int{0, 1, 5, 998, 10000} {
		d := Evaluate(active("Diamante"), count)
		assert.True(t, d.CanCreate)
		assert.True(t, d.IsUnlimited)
		assert.Equal(t, DisplayUnlimited, d.MaxAllowed)
		assert.NotEqual(t, Unlimited, d.MaxAllowed)
		assert.Equal(t, PlanDiamante, d.PlanName)
		assert.Empty(t, d.Message)
	}
}

func TestEvaluatePremiumAtLimit(t *testing.T) {
	d := Evaluate(active(PlanPremium), 5)

	assert.False(t, d.CanCreate)
	assert.Equal(t, 5, d.MaxAllowed)
	assert.Equal(t, 5, d.CurrentCount)
	assert.Equal(t, "premium", d.PlanName)
	assert.Contains(t, d.Message, "5 anuncios")
	assert.Contains(t, d.Message, "premium")
}

func TestEvaluateBelowLimit(t *testing.T) {
	d := Evaluate(active(PlanPremium), 4)

	assert.True(t, d.CanCreate)
	assert.Empty(t, d.Message)
}

func TestEvaluateSingularWording(t *testing.T) {
	d := Evaluate(active("basico"), 1)

	assert.False(t, d.CanCreate)
	assert.Equal(t, PlanBasico, d.PlanName)
	assert.Contains(t, d.Message, "1 anuncio ")
	assert.NotContains(t, d.Message, "1 anuncios")
}

func TestDenied(t *testing.T) {
	d := Denied()

	assert.False(t, d.CanCreate)
	assert.Equal(t, MessageCheckFailed, d.Message)
}

func TestCatalog(t *testing.T) {
	prices := map[string]string{PlanPremium: "price_premium"}
	entries := Catalog(func(key string) (string, bool) {
		p, ok := prices[key]
		return p, ok
	})

	if assert.Len(t, entries, 3) {
		assert.Equal(t, PlanBasico, entries[0].Key)
		assert.Equal(t, 1, entries[0].MaxListings)
		assert.Empty(t, entries[0].StripePriceID)

		assert.Equal(t, "price_premium", entries[1].StripePriceID)

		assert.True(t, entries[2].IsUnlimited)
		assert.Equal(t, DisplayUnlimited, entries[2].MaxListings)
	}
}
