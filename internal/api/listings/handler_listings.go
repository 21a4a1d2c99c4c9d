package listings

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gomeraway-api/internal/app/http/middleware"
	"gomeraway-api/internal/domain/listings"
	"gomeraway-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createListingRequest struct {
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	PricePerDay float64  `json:"price_per_day"`
	Images      []string `json:"images"`
}

// CreateListing publishes an active listing once the plan limit allows it.
func (h *Handler) CreateListing(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var body createListingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	body.Kind = strings.ToLower(strings.TrimSpace(body.Kind))
	body.Title = strings.TrimSpace(body.Title)
	switch {
	case !listings.ValidKind(body.Kind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be accommodation or vehicle"})
		return
	case body.Title == "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	case body.PricePerDay < 0:
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_per_day must not be negative"})
		return
	}

	decision, err := h.gate.Check(c.Request.Context(), identity.ID, middleware.AccessToken(c))
	if err != nil {
		h.log.Error("listing limit check failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, decision)
		return
	}
	if !decision.CanCreate {
		c.JSON(http.StatusForbidden, decision)
		return
	}

	images := make([]string, 0, len(body.Images))
	for _, img := range body.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}

	listing := &listings.Listing{
		HostID:      identity.ID,
		Kind:        body.Kind,
		Title:       body.Title,
		Description: strings.TrimSpace(body.Description),
		Location:    strings.TrimSpace(body.Location),
		PricePerDay: body.PricePerDay,
		Images:      images,
		Active:      true,
	}
	if err := h.store.CreateListing(c.Request.Context(), listing); err != nil {
		h.log.Error("create listing failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, h.view(*listing))
}

// MyListings lists the caller's listings with displayable image URLs.
func (h *Handler) MyListings(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	rows, err := h.store.ListListingsByHost(c.Request.Context(), identity.ID)
	if err != nil {
		h.log.Error("list listings failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}

	out := make([]listingView, 0, len(rows))
	for _, l := range rows {
		out = append(out, h.view(l))
	}
	c.JSON(http.StatusOK, gin.H{"listings": out})
}

// SetActive toggles a listing. Re-activating counts against the plan limit.
func (h *Handler) SetActive(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	var body struct {
		Active *bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Active == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
		return
	}

	ctx := c.Request.Context()
	listing, err := h.store.GetListing(ctx, identity.ID, uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.log.Error("load listing failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listing"})
		return
	}

	if *body.Active && !listing.Active {
		decision, err := h.gate.Check(ctx, identity.ID, middleware.AccessToken(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, decision)
			return
		}
		if !decision.CanCreate {
			c.JSON(http.StatusForbidden, decision)
			return
		}
	}

	if listing.Active != *body.Active {
		if err := h.store.SetListingActive(ctx, identity.ID, listing.ID, *body.Active); err != nil {
			h.log.Error("toggle listing failed", zap.String("user_id", identity.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
			return
		}
		listing.Active = *body.Active
	}

	c.JSON(http.StatusOK, h.view(*listing))
}
