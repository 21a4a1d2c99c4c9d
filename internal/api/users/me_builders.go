package users

import (
	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/plans"
	"gomeraway-api/internal/domain/users"
)

func BuildProfileDTO(p *users.Profile) ProfileDTO {
	return ProfileDTO{
		FullName:         p.FullName,
		Phone:            stringPtrIfNotEmpty(p.Phone),
		Address:          stringPtrIfNotEmpty(p.Address),
		City:             stringPtrIfNotEmpty(p.City),
		PostalCode:       stringPtrIfNotEmpty(p.PostalCode),
		Country:          stringPtrIfNotEmpty(p.Country),
		DateOfBirth:      stringPtrIfNotEmpty(p.DateOfBirth),
		Role:             p.Role,
		ProfileCompleted: p.ProfileCompleted,
	}
}

// BuildBillingDTO only reports a plan for an active subscription.
func BuildBillingDTO(sub *billing.Subscription) BillingDTO {
	if sub == nil {
		return BillingDTO{}
	}
	out := BillingDTO{
		Subscription: &SubscriptionDTO{
			Status:               sub.Status,
			StripeSubscriptionID: stringPtrIfNotEmpty(sub.StripeSubscriptionID),
			UpdatedAt:            sub.UpdatedAt,
		},
	}
	if sub.IsActive() {
		key := plans.Normalize(sub.Plan)
		max := plans.MaxListings(key)
		out.Plan = &PlanDTO{Key: key, MaxListings: max, IsUnlimited: max == plans.Unlimited}
		if out.Plan.IsUnlimited {
			out.Plan.MaxListings = plans.DisplayUnlimited
		}
	}
	return out
}

func BuildAccessDTO(p *users.Profile) AccessDTO {
	missing := users.MissingFields(p)
	if missing == nil {
		missing = []string{}
	}
	return AccessDTO{
		IsAdmin:         p.IsAdmin(),
		ProfileComplete: len(missing) == 0,
		Missing:         missing,
	}
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
