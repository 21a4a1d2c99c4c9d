package store

import (
	"context"

	"gomeraway-api/internal/domain/bookings"
)

// InsertBooking always inserts; there is no dedup key.
func (s *Store) InsertBooking(ctx context.Context, b *bookings.Booking) error {
	return wrap("insert booking", s.db.WithContext(ctx).Create(b).Error)
}

func (s *Store) ListBookings(ctx context.Context) ([]bookings.Booking, error) {
	var out []bookings.Booking
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, wrap("list bookings", err)
	}
	return out, nil
}
