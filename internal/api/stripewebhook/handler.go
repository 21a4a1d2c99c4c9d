package stripewebhooks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/bookings"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"go.uber.org/zap"
)

const maxBodyBytes = 65536

// Store holds the only two writes a payment event can cause.
type Store interface {
	UpsertSubscription(ctx context.Context, sub *billing.Subscription) error
	InsertBooking(ctx context.Context, b *bookings.Booking) error
}

type Handler struct {
	store  Store
	secret string
	log    *zap.Logger
}

func NewHandler(s Store, endpointSecret string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: s, secret: endpointSecret, log: log}
}

// StripeWebhook verifies the signed event and applies completed checkouts.
// Every other event type is acknowledged without touching the database.
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn("stripe signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook signature verification failed: " + err.Error()})
		return
	}

	log := h.log.With(zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			log.Error("failed to parse checkout session", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		if err := h.handleCheckoutSessionCompleted(c.Request.Context(), &session, log); err != nil {
			log.Error("checkout completion failed", zap.String("session_id", session.ID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

	default:
		log.Debug("stripe event ignored")
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
