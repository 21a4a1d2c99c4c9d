// Package limits evaluates the listing-limit policy against live rows.
package limits

import (
	"context"
	"errors"
	"fmt"

	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/plans"
	"gomeraway-api/internal/store"
)

type Store interface {
	ActiveSubscription(ctx context.Context, userID string) (*billing.Subscription, error)
	CountActiveListings(ctx context.Context, hostID string) (int64, error)
}

// Service reads the subscription and the count on every call. Nothing is
// cached.
type Service struct {
	store Store
}

func New(s Store) *Service {
	return &Service{store: s}
}

// Decide returns plans.Denied() together with the error when either read
// fails.
func (s *Service) Decide(ctx context.Context, userID string) (plans.Decision, error) {
	sub, err := s.store.ActiveSubscription(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return plans.Evaluate(nil, 0), nil
	case err != nil:
		return plans.Denied(), fmt.Errorf("load subscription: %w", err)
	}

	count, err := s.store.CountActiveListings(ctx, userID)
	if err != nil {
		return plans.Denied(), fmt.Errorf("count active listings: %w", err)
	}
	return plans.Evaluate(sub, int(count)), nil
}

// Check matches the remote gate's signature so either can back listing
// creation.
func (s *Service) Check(ctx context.Context, userID, _ string) (plans.Decision, error) {
	return s.Decide(ctx, userID)
}
