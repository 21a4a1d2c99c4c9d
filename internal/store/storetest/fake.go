// Package storetest provides an in-memory stand-in for store.Store with the
// same upsert/insert semantics, for handler tests.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/bookings"
	"gomeraway-api/internal/domain/listings"
	"gomeraway-api/internal/domain/users"
	"gomeraway-api/internal/store"
)

// ErrUnavailable is a ready-made upstream failure for Fail.
var ErrUnavailable = &store.Error{Code: store.CodeUnavailable, Op: "fake", Err: errors.New("connection refused")}

type Fake struct {
	mu sync.Mutex

	Profiles      map[string]users.Profile
	Subscriptions map[string]billing.Subscription
	Listings      []listings.Listing
	Bookings      []bookings.Booking

	// Writes counts every mutating call that reached the store.
	Writes int
	// Calls counts every call by method name.
	Calls map[string]int

	failures map[string]error
	nextID   uint
}

func New() *Fake {
	return &Fake{
		Profiles:      map[string]users.Profile{},
		Subscriptions: map[string]billing.Subscription{},
		Calls:         map[string]int{},
		failures:      map[string]error{},
	}
}

// Fail makes every later call to method return err.
func (f *Fake) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = err
}

func (f *Fake) enter(method string) error {
	f.Calls[method]++
	return f.failures[method]
}

func (f *Fake) id() uint {
	f.nextID++
	return f.nextID
}

func (f *Fake) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enter("Ping")
}

func (f *Fake) GetProfile(ctx context.Context, id string) (*users.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetProfile"); err != nil {
		return nil, err
	}
	p, ok := f.Profiles[id]
	if !ok {
		return nil, &store.Error{Code: store.CodeNotFound, Op: "get profile"}
	}
	return &p, nil
}

func (f *Fake) CreateProfile(ctx context.Context, p *users.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateProfile"); err != nil {
		return err
	}
	if _, ok := f.Profiles[p.ID]; ok {
		return &store.Error{Code: store.CodeConflict, Op: "create profile"}
	}
	f.Writes++
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	f.Profiles[p.ID] = *p
	return nil
}

func (f *Fake) UpdateProfileEmail(ctx context.Context, id, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateProfileEmail"); err != nil {
		return err
	}
	p, ok := f.Profiles[id]
	if !ok {
		return &store.Error{Code: store.CodeNotFound, Op: "update profile email"}
	}
	f.Writes++
	p.Email = email
	p.UpdatedAt = time.Now()
	f.Profiles[id] = p
	return nil
}

func (f *Fake) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*users.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateProfile"); err != nil {
		return nil, err
	}
	p, ok := f.Profiles[id]
	if !ok {
		return nil, &store.Error{Code: store.CodeNotFound, Op: "update profile"}
	}
	f.Writes++
	for col, v := range updates {
		switch col {
		case "full_name":
			p.FullName = v.(string)
		case "phone":
			p.Phone = v.(string)
		case "address":
			p.Address = v.(string)
		case "city":
			p.City = v.(string)
		case "postal_code":
			p.PostalCode = v.(string)
		case "country":
			p.Country = v.(string)
		case "date_of_birth":
			p.DateOfBirth = v.(string)
		case "profile_completed":
			p.ProfileCompleted = v.(bool)
		case "role":
			p.Role = v.(string)
		}
	}
	p.UpdatedAt = time.Now()
	f.Profiles[id] = p
	return &p, nil
}

func (f *Fake) ListProfiles(ctx context.Context) ([]users.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListProfiles"); err != nil {
		return nil, err
	}
	out := make([]users.Profile, 0, len(f.Profiles))
	for _, p := range f.Profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) ActiveSubscription(ctx context.Context, userID string) (*billing.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ActiveSubscription"); err != nil {
		return nil, err
	}
	sub, ok := f.Subscriptions[userID]
	if !ok || sub.Status != billing.StatusActive {
		return nil, &store.Error{Code: store.CodeNotFound, Op: "active subscription"}
	}
	return &sub, nil
}

func (f *Fake) GetSubscription(ctx context.Context, userID string) (*billing.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetSubscription"); err != nil {
		return nil, err
	}
	sub, ok := f.Subscriptions[userID]
	if !ok {
		return nil, &store.Error{Code: store.CodeNotFound, Op: "get subscription"}
	}
	return &sub, nil
}

func (f *Fake) UpsertSubscription(ctx context.Context, sub *billing.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpsertSubscription"); err != nil {
		return err
	}
	f.Writes++
	now := time.Now()
	if existing, ok := f.Subscriptions[sub.UserID]; ok {
		existing.Plan = sub.Plan
		existing.Status = sub.Status
		existing.StripeSubscriptionID = sub.StripeSubscriptionID
		existing.UpdatedAt = now
		f.Subscriptions[sub.UserID] = existing
		sub.ID = existing.ID
		return nil
	}
	sub.ID = f.id()
	sub.CreatedAt, sub.UpdatedAt = now, now
	f.Subscriptions[sub.UserID] = *sub
	return nil
}

func (f *Fake) CountActiveListings(ctx context.Context, hostID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CountActiveListings"); err != nil {
		return 0, err
	}
	var n int64
	for _, l := range f.Listings {
		if l.HostID == hostID && l.Active {
			n++
		}
	}
	return n, nil
}

func (f *Fake) CreateListing(ctx context.Context, l *listings.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateListing"); err != nil {
		return err
	}
	f.Writes++
	l.ID = f.id()
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	f.Listings = append(f.Listings, *l)
	return nil
}

func (f *Fake) GetListing(ctx context.Context, hostID string, id uint) (*listings.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetListing"); err != nil {
		return nil, err
	}
	for _, l := range f.Listings {
		if l.ID == id && l.HostID == hostID {
			l := l
			return &l, nil
		}
	}
	return nil, &store.Error{Code: store.CodeNotFound, Op: "get listing"}
}

func (f *Fake) ListListingsByHost(ctx context.Context, hostID string) ([]listings.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListListingsByHost"); err != nil {
		return nil, err
	}
	out := []listings.Listing{}
	for _, l := range f.Listings {
		if l.HostID == hostID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *Fake) RecentActiveListings(ctx context.Context, limit int) ([]listings.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("RecentActiveListings"); err != nil {
		return nil, err
	}
	out := []listings.Listing{}
	for i := len(f.Listings) - 1; i >= 0 && len(out) < limit; i-- {
		if f.Listings[i].Active {
			out = append(out, f.Listings[i])
		}
	}
	return out, nil
}

func (f *Fake) SetListingActive(ctx context.Context, hostID string, id uint, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("SetListingActive"); err != nil {
		return err
	}
	for i := range f.Listings {
		if f.Listings[i].ID == id && f.Listings[i].HostID == hostID {
			f.Writes++
			f.Listings[i].Active = active
			return nil
		}
	}
	return &store.Error{Code: store.CodeNotFound, Op: "set listing active"}
}

func (f *Fake) InsertBooking(ctx context.Context, b *bookings.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertBooking"); err != nil {
		return err
	}
	f.Writes++
	b.ID = f.id()
	b.CreatedAt = time.Now()
	f.Bookings = append(f.Bookings, *b)
	return nil
}

func (f *Fake) ListBookings(ctx context.Context) ([]bookings.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListBookings"); err != nil {
		return nil, err
	}
	return append([]bookings.Booking(nil), f.Bookings...), nil
}

// WriteCount returns Writes under the lock.
func (f *Fake) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Writes
}
