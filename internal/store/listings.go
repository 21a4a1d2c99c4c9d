package store

import (
	"context"

	"gomeraway-api/internal/domain/listings"
)

func (s *Store) CountActiveListings(ctx context.Context, hostID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&listings.Listing{}).
		Where("host_id = ? AND active = ?", hostID, true).
		Count(&n).Error
	if err != nil {
		return 0, wrap("count active listings", err)
	}
	return n, nil
}

func (s *Store) CreateListing(ctx context.Context, l *listings.Listing) error {
	return wrap("create listing", s.db.WithContext(ctx).Create(l).Error)
}

func (s *Store) GetListing(ctx context.Context, hostID string, id uint) (*listings.Listing, error) {
	var l listings.Listing
	err := s.db.WithContext(ctx).
		Where("id = ? AND host_id = ?", id, hostID).
		First(&l).Error
	if err != nil {
		return nil, wrap("get listing", err)
	}
	return &l, nil
}

func (s *Store) ListListingsByHost(ctx context.Context, hostID string) ([]listings.Listing, error) {
	var out []listings.Listing
	err := s.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, wrap("list listings", err)
	}
	return out, nil
}

func (s *Store) RecentActiveListings(ctx context.Context, limit int) ([]listings.Listing, error) {
	var out []listings.Listing
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, wrap("recent listings", err)
	}
	return out, nil
}

func (s *Store) SetListingActive(ctx context.Context, hostID string, id uint, active bool) error {
	res := s.db.WithContext(ctx).
		Model(&listings.Listing{}).
		Where("id = ? AND host_id = ?", id, hostID).
		Update("active", active)
	if res.Error != nil {
		return wrap("set listing active", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("set listing active")
	}
	return nil
}
