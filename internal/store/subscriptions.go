package store

import (
	"context"

	"gomeraway-api/internal/domain/billing"

	"gorm.io/gorm/clause"
)

// ActiveSubscription returns the user's subscription only when its status is
// active.
func (s *Store) ActiveSubscription(ctx context.Context, userID string) (*billing.Subscription, error) {
	var sub billing.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, billing.StatusActive).
		First(&sub).Error
	if err != nil {
		return nil, wrap("active subscription", err)
	}
	return &sub, nil
}

// GetSubscription returns the user's subscription whatever its status.
func (s *Store) GetSubscription(ctx context.Context, userID string) (*billing.Subscription, error) {
	var sub billing.Subscription
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, wrap("get subscription", err)
	}
	return &sub, nil
}

// UpsertSubscription inserts or replaces the row keyed by user_id; the last
// write wins.
func (s *Store) UpsertSubscription(ctx context.Context, sub *billing.Subscription) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"plan", "status", "stripe_subscription_id", "updated_at"}),
		}).
		Create(sub).Error
	return wrap("upsert subscription", err)
}
