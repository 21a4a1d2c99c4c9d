package billing

import (
	"net/http"
	"strings"

	"gomeraway-api/internal/app/http/middleware"
	"gomeraway-api/internal/domain/plans"
	stripeinfra "gomeraway-api/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type subscriptionCheckoutRequest struct {
	PlanType string `json:"planType"`
	PlanName string `json:"planName"`
}

// CreateCheckoutSession starts a recurring checkout for one of the plans.
// The webhook reads user_id and plan_name back from the session metadata.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	var body subscriptionCheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	planKey := plans.Normalize(body.PlanType)
	priceID, ok := h.prices(planKey)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan type"})
		return
	}

	planName := strings.TrimSpace(body.PlanName)
	if planName == "" {
		planName = planKey
	}

	session, err := h.gateway.CreateSubscriptionCheckout(c.Request.Context(), stripeinfra.SubscriptionCheckout{
		PriceID:       priceID,
		CustomerEmail: identity.Email,
		SuccessURL:    h.siteURL + "/subscription-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     h.siteURL + "/pricing",
		Metadata: map[string]string{
			"user_id":   identity.ID,
			"plan_name": planName,
		},
	})
	if err != nil {
		h.log.Error("create subscription checkout failed",
			zap.String("user_id", identity.ID),
			zap.String("plan", planKey),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": session.ID, "url": session.URL})
}
