package billing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gomeraway-api/internal/app/http/middleware"
	stripeinfra "gomeraway-api/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listingRef accepts the listing id as a JSON number or string.
type listingRef string

func (r *listingRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = listingRef(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("listing id: %w", err)
	}
	*r = listingRef(n.String())
	return nil
}

type bookingCheckoutRequest struct {
	Listing *struct {
		ID    listingRef `json:"id"`
		Title string     `json:"title"`
	} `json:"listing"`
	Range *struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	TotalPrice *float64 `json:"totalPrice"`
	Deposit    *float64 `json:"deposit"`
}

func (r *bookingCheckoutRequest) complete() bool {
	return r.Listing != nil && r.Listing.ID != "" &&
		r.Range != nil && strings.TrimSpace(r.Range.From) != "" && strings.TrimSpace(r.Range.To) != "" &&
		r.TotalPrice != nil && r.Deposit != nil
}

// CreateBookingCheckout charges the booking deposit as a one-time payment.
// The booking row is only written once the webhook confirms the payment.
func (h *Handler) CreateBookingCheckout(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	var body bookingCheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil || !body.complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required booking information."})
		return
	}

	listingID := string(body.Listing.ID)
	title := strings.TrimSpace(body.Listing.Title)
	if title == "" {
		title = "Reserva " + listingID
	}
	from := strings.TrimSpace(body.Range.From)
	to := strings.TrimSpace(body.Range.To)

	session, err := h.gateway.CreateDepositCheckout(c.Request.Context(), stripeinfra.DepositCheckout{
		ProductName:   title,
		Description:   fmt.Sprintf("Depósito de reserva del %s al %s", from, to),
		AmountCents:   stripeinfra.ToMinorUnits(*body.Deposit),
		Currency:      h.currency,
		CustomerEmail: identity.Email,
		SuccessURL:    h.siteURL + "/booking-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     h.siteURL + "/listing/" + listingID,
		Metadata: map[string]string{
			"user_id":     identity.ID,
			"listing_id":  listingID,
			"start_date":  from,
			"end_date":    to,
			"total_price": strconv.FormatFloat(*body.TotalPrice, 'f', -1, 64),
		},
	})
	if err != nil {
		h.log.Error("create booking checkout failed",
			zap.String("user_id", identity.ID),
			zap.String("listing_id", listingID),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}
