package users

import (
	"context"
	"errors"
	"io"
	"net/http"

	"gomeraway-api/internal/app/http/middleware"
	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/users"
	"gomeraway-api/internal/session"
	"gomeraway-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Store interface {
	GetProfile(ctx context.Context, id string) (*users.Profile, error)
	GetSubscription(ctx context.Context, userID string) (*billing.Subscription, error)
}

type Handler struct {
	store   Store
	manager *session.Manager
	log     *zap.Logger
}

func NewHandler(s Store, manager *session.Manager, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: s, manager: manager, log: log}
}

// SyncSession is called by the client on load and on every auth event.
// Data-layer failures come back inside the state, not as an HTTP error.
func (h *Handler) SyncSession(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	c.JSON(http.StatusOK, h.manager.Sync(c.Request.Context(), identity))
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)
	ctx := c.Request.Context()

	profile, err := h.store.GetProfile(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		h.log.Error("load profile failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	sub, err := h.store.GetSubscription(ctx, identity.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.log.Error("load subscription failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:    UserDTO{ID: identity.ID, Email: identity.Email},
		Profile: BuildProfileDTO(profile),
		Billing: BuildBillingDTO(sub),
		Access:  BuildAccessDTO(profile),
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	var patch session.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.manager.UpdateProfile(c.Request.Context(), identity, patch)
	switch {
	case errors.Is(err, session.ErrInvalidPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	case err != nil:
		h.log.Error("update profile failed", zap.String("user_id", identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *Handler) ProfileCompletion(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	profile, err := h.store.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	access := BuildAccessDTO(profile)
	c.JSON(http.StatusOK, gin.H{"complete": access.ProfileComplete, "missing": access.Missing})
}

// SessionEvents streams the caller's session states as server-sent events
// until the client goes away.
func (h *Handler) SessionEvents(c *gin.Context) {
	identity, _ := middleware.IdentityFrom(c)

	states, cancel := h.manager.Hub().Subscribe(identity.ID)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"user_id": identity.ID})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case st, ok := <-states:
			if !ok {
				return false
			}
			c.SSEvent("session", st)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
