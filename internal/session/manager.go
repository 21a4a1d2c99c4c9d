// Package session keeps the stored profile in step with the signed-in
// identity and broadcasts the resulting session state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gomeraway-api/internal/domain/users"
	"gomeraway-api/internal/infra/supabase"
	"gomeraway-api/internal/store"

	"go.uber.org/zap"
)

// ErrInvalidPatch is returned for profile patches that fail validation.
var ErrInvalidPatch = errors.New("invalid profile update")

type Store interface {
	GetProfile(ctx context.Context, id string) (*users.Profile, error)
	CreateProfile(ctx context.Context, p *users.Profile) error
	UpdateProfileEmail(ctx context.Context, id, email string) error
	UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*users.Profile, error)
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// State is what the client renders its auth context from. Error is set when
// the profile could not be loaded or written; User and Session are still
// filled in that case.
type State struct {
	User    *User             `json:"user"`
	Profile *users.Profile    `json:"profile"`
	Session *supabase.Session `json:"session"`
	Loading bool              `json:"loading"`
	Error   string            `json:"error,omitempty"`
}

// ProfilePatch holds the fields a user may change on their own profile. Nil
// means untouched.
type ProfilePatch struct {
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
	Country     *string `json:"country"`
	DateOfBirth *string `json:"date_of_birth"`
}

type Manager struct {
	store Store
	hub   *Hub
	log   *zap.Logger
}

func NewManager(s Store, hub *Hub, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: s, hub: hub, log: log}
}

func (m *Manager) Hub() *Hub { return m.hub }

// Sync makes sure a profile exists for the identity and that its email
// matches. It performs at most one write.
func (m *Manager) Sync(ctx context.Context, identity *supabase.Identity) State {
	st := State{
		User:    &User{ID: identity.ID, Email: identity.Email},
		Session: identity.Session(),
	}

	profile, err := m.store.GetProfile(ctx, identity.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		profile = users.NewProfile(identity.ID, identity.Email)
		if err := m.store.CreateProfile(ctx, profile); err != nil {
			m.log.Error("create profile failed", zap.String("user_id", identity.ID), zap.Error(err))
			st.Error = err.Error()
			return m.publish(st)
		}
	case err != nil:
		m.log.Error("load profile failed", zap.String("user_id", identity.ID), zap.Error(err))
		st.Error = err.Error()
		return m.publish(st)
	case identity.Email != "" && profile.Email != identity.Email:
		if err := m.store.UpdateProfileEmail(ctx, identity.ID, identity.Email); err != nil {
			m.log.Error("update profile email failed", zap.String("user_id", identity.ID), zap.Error(err))
			st.Error = err.Error()
			st.Profile = profile
			return m.publish(st)
		}
		profile.Email = identity.Email
	}

	st.Profile = profile
	return m.publish(st)
}

// UpdateProfile applies patch and recomputes profile_completed.
func (m *Manager) UpdateProfile(ctx context.Context, identity *supabase.Identity, patch ProfilePatch) (*users.Profile, error) {
	current, err := m.store.GetProfile(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	updates, err := patch.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return current, nil
	}

	merged := *current
	patch.apply(&merged)
	updates["profile_completed"] = users.CheckProfileCompletion(&merged)

	updated, err := m.store.UpdateProfile(ctx, identity.ID, updates)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	m.publish(State{
		User:    &User{ID: identity.ID, Email: identity.Email},
		Profile: updated,
		Session: identity.Session(),
	})
	return updated, nil
}

func (m *Manager) publish(st State) State {
	if m.hub != nil && st.User != nil {
		m.hub.Publish(st.User.ID, st)
	}
	return st
}

func (p ProfilePatch) fields() map[string]*string {
	return map[string]*string{
		"full_name":     p.FullName,
		"phone":         p.Phone,
		"address":       p.Address,
		"city":          p.City,
		"postal_code":   p.PostalCode,
		"country":       p.Country,
		"date_of_birth": p.DateOfBirth,
	}
}

func (p ProfilePatch) updates() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	for col, v := range p.fields() {
		if v == nil {
			continue
		}
		val := strings.TrimSpace(*v)
		if col == "date_of_birth" && val != "" {
			if _, err := time.Parse("2006-01-02", val); err != nil {
				return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", ErrInvalidPatch)
			}
		}
		out[col] = val
	}
	return out, nil
}

func (p ProfilePatch) apply(profile *users.Profile) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&profile.FullName, p.FullName)
	set(&profile.Phone, p.Phone)
	set(&profile.Address, p.Address)
	set(&profile.City, p.City)
	set(&profile.PostalCode, p.PostalCode)
	set(&profile.Country, p.Country)
	set(&profile.DateOfBirth, p.DateOfBirth)
}
