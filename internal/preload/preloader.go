package preload

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gomeraway-api/internal/domain/listings"
	"gomeraway-api/internal/domain/media"
	"gomeraway-api/internal/prefetch"

	"go.uber.org/zap"
)

const (
	IntentNavigate = "navigate"
	IntentHover    = "hover"

	coversToWarm = 6
)

type ListingSource interface {
	RecentActiveListings(ctx context.Context, limit int) ([]listings.Listing, error)
}

type Preloader struct {
	queue       *prefetch.Queue
	listings    ListingSource
	http        *http.Client
	storageBase string
	bucket      string
	log         *zap.Logger
}

func New(queue *prefetch.Queue, src ListingSource, storageBase, bucket string, log *zap.Logger) *Preloader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preloader{
		queue:       queue,
		listings:    src,
		http:        &http.Client{Timeout: 5 * time.Second},
		storageBase: storageBase,
		bucket:      bucket,
		log:         log,
	}
}

// Hint returns the likely-next routes for route and schedules their warmers
// under client. A navigate intent first drops the client's earlier tasks.
func (p *Preloader) Hint(client, route, intent string) []string {
	next := LikelyNext(route)
	prefix := client + "|"

	if intent == IntentNavigate {
		if n := p.queue.CancelPrefix(prefix); n > 0 {
			p.log.Debug("prefetch tasks cancelled", zap.String("client", client), zap.Int("count", n))
		}
	}

	for _, r := range next {
		task := p.warmerFor(r)
		if task == nil {
			continue
		}
		p.queue.Enqueue(prefix+r, task)
	}
	return next
}

func (p *Preloader) warmerFor(route string) prefetch.Task {
	switch {
	case route == "/listings":
		return p.warmCovers(listings.KindAccommodation)
	case route == "/vehicles":
		return p.warmCovers(listings.KindVehicle)
	case strings.HasPrefix(route, "/listing/"):
		return p.warmCovers("")
	default:
		return nil
	}
}

// warmCovers issues HEAD requests for the cover image of the newest active
// listings of kind (any kind when empty).
func (p *Preloader) warmCovers(kind string) prefetch.Task {
	return func(ctx context.Context) error {
		recent, err := p.listings.RecentActiveListings(ctx, coversToWarm*2)
		if err != nil {
			return fmt.Errorf("load recent listings: %w", err)
		}

		warmed := 0
		for _, l := range recent {
			if warmed == coversToWarm {
				break
			}
			if kind != "" && l.Kind != kind {
				continue
			}
			cover := media.ResolveImageURLs(p.storageBase, p.bucket, l.Images)[0]
			if !strings.HasPrefix(cover, "http") {
				continue
			}
			if err := p.head(ctx, cover); err != nil {
				return err
			}
			warmed++
		}
		return nil
	}
}

func (p *Preloader) head(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
