package store

import (
	"context"

	"gomeraway-api/internal/domain/users"
)

func (s *Store) GetProfile(ctx context.Context, id string) (*users.Profile, error) {
	var p users.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, wrap("get profile", err)
	}
	return &p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *users.Profile) error {
	return wrap("create profile", s.db.WithContext(ctx).Create(p).Error)
}

func (s *Store) UpdateProfileEmail(ctx context.Context, id, email string) error {
	res := s.db.WithContext(ctx).
		Model(&users.Profile{}).
		Where("id = ?", id).
		Update("email", email)
	if res.Error != nil {
		return wrap("update profile email", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("update profile email")
	}
	return nil
}

// UpdateProfile applies a column->value patch and returns the stored row.
func (s *Store) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*users.Profile, error) {
	res := s.db.WithContext(ctx).
		Model(&users.Profile{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, wrap("update profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("update profile")
	}
	return s.GetProfile(ctx, id)
}

func (s *Store) ListProfiles(ctx context.Context) ([]users.Profile, error) {
	var out []users.Profile
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, wrap("list profiles", err)
	}
	return out, nil
}
