package billing

import "time"

const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

// Subscription is the single subscription row a user may hold.
type Subscription struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               string    `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_id" json:"user_id"`
	Plan                 string    `gorm:"not null" json:"plan"`
	Status               string    `gorm:"not null;index" json:"status"`
	StripeSubscriptionID string    `gorm:"column:stripe_subscription_id" json:"stripe_subscription_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (s *Subscription) IsActive() bool {
	return s != nil && s.Status == StatusActive
}
