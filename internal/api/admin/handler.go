package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/bookings"
	"gomeraway-api/internal/domain/plans"
	"gomeraway-api/internal/domain/users"
	"gomeraway-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Store interface {
	Ping(ctx context.Context) error
	GetProfile(ctx context.Context, id string) (*users.Profile, error)
	GetSubscription(ctx context.Context, userID string) (*billing.Subscription, error)
	ListProfiles(ctx context.Context) ([]users.Profile, error)
	ListBookings(ctx context.Context) ([]bookings.Booking, error)
}

type Decider interface {
	Decide(ctx context.Context, userID string) (plans.Decision, error)
}

// AuthProbe reads the auth service settings.
type AuthProbe interface {
	Settings() (interface{}, error)
}

type Handler struct {
	store   Store
	decider Decider
	auth    AuthProbe
	log     *zap.Logger
}

// NewHandler accepts a nil auth probe when no service key is configured.
func NewHandler(s Store, decider Decider, auth AuthProbe, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: s, decider: decider, auth: auth, log: log}
}

type AdminUser struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	Role             string    `json:"role"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
}

type AdminStats struct {
	TotalUsers    int            `json:"total_users"`
	TotalBookings int            `json:"total_bookings"`
	DepositsPaid  int            `json:"deposits_paid"`
	BookedRevenue float64        `json:"booked_revenue"`
	UsersPerRole  map[string]int `json:"users_per_role"`
	CompleteShare float64        `json:"complete_profiles_share"`
}

// lookupError is the structured answer of the row panels.
type lookupError struct {
	Code    store.Code `json:"code"`
	Message string     `json:"message"`
}

func (h *Handler) respondLookupError(c *gin.Context, what string, err error) {
	code := store.CodeOf(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case code == "":
		code = store.CodeUnavailable
	}
	if status == http.StatusInternalServerError {
		h.log.Error("admin lookup failed", zap.String("what", what), zap.Error(err))
	}
	c.JSON(status, gin.H{"found": false, "error": lookupError{Code: code, Message: err.Error()}})
}

func (h *Handler) Ping(c *gin.Context) {
	start := time.Now()
	err := h.store.Ping(c.Request.Context())
	latency := time.Since(start)
	if err != nil {
		h.log.Error("database ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "latency_ms": latency.Milliseconds(), "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "latency_ms": latency.Milliseconds()})
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.store.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, "profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "profile": profile})
}

func (h *Handler) GetSubscription(c *gin.Context) {
	sub, err := h.store.GetSubscription(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.respondLookupError(c, "subscription", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "subscription": sub})
}

// GetLimit runs the listing-limit decision for any user.
func (h *Handler) GetLimit(c *gin.Context) {
	userID := c.Param("user_id")
	decision, err := h.decider.Decide(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("admin limit check failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"decision": decision, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decision": decision})
}

func (h *Handler) AuthSettings(c *gin.Context) {
	if h.auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Auth admin not configured"})
		return
	}
	settings, err := h.auth.Settings()
	if err != nil {
		h.log.Error("auth settings probe failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	profiles, err := h.store.ListProfiles(c.Request.Context())
	if err != nil {
		h.log.Error("list profiles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	adminUsers := make([]AdminUser, 0, len(profiles))
	for _, p := range profiles {
		adminUsers = append(adminUsers, AdminUser{
			ID:               p.ID,
			Email:            p.Email,
			FullName:         p.FullName,
			Role:             p.Role,
			ProfileCompleted: p.ProfileCompleted,
			CreatedAt:        p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, adminUsers)
}

func (h *Handler) ListAllBookings(c *gin.Context) {
	rows, err := h.store.ListBookings(c.Request.Context())
	if err != nil {
		h.log.Error("list bookings failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}
	if rows == nil {
		rows = []bookings.Booking{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	ctx := c.Request.Context()
	profiles, err := h.store.ListProfiles(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	rows, err := h.store.ListBookings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}

	stats := AdminStats{
		TotalUsers:    len(profiles),
		TotalBookings: len(rows),
		UsersPerRole:  map[string]int{},
	}
	complete := 0
	for _, p := range profiles {
		stats.UsersPerRole[p.Role]++
		if p.ProfileCompleted {
			complete++
		}
	}
	if len(profiles) > 0 {
		stats.CompleteShare = float64(complete) / float64(len(profiles))
	}
	for _, b := range rows {
		if b.DepositPaid {
			stats.DepositsPaid++
		}
		stats.BookedRevenue += b.TotalPrice
	}
	c.JSON(http.StatusOK, stats)
}
