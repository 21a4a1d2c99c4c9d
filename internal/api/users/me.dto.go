package users

import "time"

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Profile ProfileDTO `json:"profile"`
	Billing BillingDTO `json:"billing"`
	Access  AccessDTO  `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

/* ---------- PROFILE ---------- */

type ProfileDTO struct {
	FullName         string  `json:"full_name"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	City             *string `json:"city"`
	PostalCode       *string `json:"postal_code"`
	Country          *string `json:"country"`
	DateOfBirth      *string `json:"date_of_birth"`
	Role             string  `json:"role"`
	ProfileCompleted bool    `json:"profile_completed"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Plan         *PlanDTO         `json:"plan"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

type PlanDTO struct {
	Key         string `json:"key"`
	MaxListings int    `json:"max_listings"`
	IsUnlimited bool   `json:"is_unlimited"`
}

type SubscriptionDTO struct {
	Status               string    `json:"status"`
	StripeSubscriptionID *string   `json:"stripe_subscription_id"`
	UpdatedAt            time.Time `json:"updated_at"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	IsAdmin         bool     `json:"is_admin"`
	ProfileComplete bool     `json:"profile_complete"`
	Missing         []string `json:"missing"`
}
