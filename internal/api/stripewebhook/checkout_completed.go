package stripewebhooks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/bookings"
	"gomeraway-api/internal/domain/plans"

	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

var bookingKeys = []string{"user_id", "listing_id", "start_date", "end_date", "total_price"}

func (h *Handler) handleCheckoutSessionCompleted(ctx context.Context, session *stripe.CheckoutSession, log *zap.Logger) error {
	log = log.With(zap.String("session_id", session.ID), zap.String("mode", string(session.Mode)))

	switch session.Mode {
	case stripe.CheckoutSessionModeSubscription:
		return h.activateSubscription(ctx, session, log)
	case stripe.CheckoutSessionModePayment:
		return h.confirmBooking(ctx, session, log)
	default:
		log.Info("checkout mode not handled")
		return nil
	}
}

// activateSubscription upserts on user_id, so a redelivered event leaves
// exactly one row behind.
func (h *Handler) activateSubscription(ctx context.Context, session *stripe.CheckoutSession, log *zap.Logger) error {
	userID := strings.TrimSpace(session.Metadata["user_id"])
	if userID == "" {
		return errors.New("missing user_id in session metadata")
	}

	plan := plans.Normalize(session.Metadata["plan_name"])
	if plan == "" {
		plan = plans.PlanBasico
	}

	sub := &billing.Subscription{
		UserID: userID,
		Plan:   plan,
		Status: billing.StatusActive,
	}
	if session.Subscription != nil {
		sub.StripeSubscriptionID = session.Subscription.ID
	}

	if err := h.store.UpsertSubscription(ctx, sub); err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	log.Info("subscription activated", zap.String("user_id", userID), zap.String("plan", plan))
	return nil
}

// confirmBooking inserts one booking per delivery. There is no dedup key.
func (h *Handler) confirmBooking(ctx context.Context, session *stripe.CheckoutSession, log *zap.Logger) error {
	md := session.Metadata
	var missing []string
	for _, k := range bookingKeys {
		if strings.TrimSpace(md[k]) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing booking metadata: %s", strings.Join(missing, ", "))
	}

	listingID, err := strconv.ParseUint(strings.TrimSpace(md["listing_id"]), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid listing_id %q: %w", md["listing_id"], err)
	}
	start, err := parseDate(md["start_date"])
	if err != nil {
		return fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := parseDate(md["end_date"])
	if err != nil {
		return fmt.Errorf("invalid end_date: %w", err)
	}
	total, err := strconv.ParseFloat(strings.TrimSpace(md["total_price"]), 64)
	if err != nil {
		return fmt.Errorf("invalid total_price %q: %w", md["total_price"], err)
	}

	booking := &bookings.Booking{
		ListingID:       uint(listingID),
		UserID:          strings.TrimSpace(md["user_id"]),
		StartDate:       start,
		EndDate:         end,
		TotalPrice:      total,
		DepositPaid:     true,
		Status:          bookings.StatusConfirmed,
		StripeSessionID: session.ID,
	}
	if err := h.store.InsertBooking(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	log.Info("booking confirmed", zap.String("user_id", booking.UserID), zap.Uint64("listing_id", listingID))
	return nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp and keeps
// the date part.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
