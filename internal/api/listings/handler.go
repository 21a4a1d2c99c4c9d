package listings

import (
	"context"

	"gomeraway-api/internal/domain/listings"
	"gomeraway-api/internal/domain/media"
	"gomeraway-api/internal/domain/plans"

	"go.uber.org/zap"
)

type Store interface {
	CreateListing(ctx context.Context, l *listings.Listing) error
	GetListing(ctx context.Context, hostID string, id uint) (*listings.Listing, error)
	ListListingsByHost(ctx context.Context, hostID string) ([]listings.Listing, error)
	SetListingActive(ctx context.Context, hostID string, id uint, active bool) error
}

// Decider evaluates the plan limit for a user from live rows.
type Decider interface {
	Decide(ctx context.Context, userID string) (plans.Decision, error)
}

// Gate answers whether a user may activate one more listing. It is either the
// local Decider or the remote limit function.
type Gate interface {
	Check(ctx context.Context, userID, accessToken string) (plans.Decision, error)
}

type Handler struct {
	store       Store
	decider     Decider
	gate        Gate
	storageBase string
	bucket      string
	log         *zap.Logger
}

func NewHandler(s Store, decider Decider, gate Gate, storageBase, bucket string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:       s,
		decider:     decider,
		gate:        gate,
		storageBase: storageBase,
		bucket:      bucket,
		log:         log,
	}
}

type listingView struct {
	listings.Listing
	CoverURL  string   `json:"cover_url"`
	ImageURLs []string `json:"image_urls"`
}

func (h *Handler) view(l listings.Listing) listingView {
	urls := media.ResolveImageURLs(h.storageBase, h.bucket, l.Images)
	return listingView{Listing: l, CoverURL: urls[0], ImageURLs: urls}
}
