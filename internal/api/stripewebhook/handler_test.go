package stripewebhooks

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gomeraway-api/internal/domain/billing"
	"gomeraway-api/internal/domain/bookings"
	"gomeraway-api/internal/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75/webhook"
)

const (
	secret = "whsec_test_secret"
	userID = "9a0e5d3c-2f41-4c8b-a7e2-61d0b4f7c3aa"
)

func sign(payload []byte, secret string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: secret}).Header
}

func eventPayload(t *testing.T, eventType string, object map[string]interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]interface{}{
		"id":          "evt_" + eventType,
		"object":      "event",
		"type":        eventType,
		"api_version": "2023-10-16",
		"created":     time.Now().Unix(),
		"data":        map[string]interface{}{"object": object},
	})
	require.NoError(t, err)
	return b
}

func subscriptionSession(plan string) map[string]interface{} {
	md := map[string]interface{}{"user_id": userID}
	if plan != "" {
		md["plan_name"] = plan
	}
	return map[string]interface{}{
		"id":           "cs_sub_1",
		"object":       "checkout.session",
		"mode":         "subscription",
		"subscription": "sub_123",
		"metadata":     md,
	}
}

func bookingSession() map[string]interface{} {
	return map[string]interface{}{
		"id":     "cs_pay_1",
		"object": "checkout.session",
		"mode":   "payment",
		"metadata": map[string]interface{}{
			"user_id":     userID,
			"listing_id":  "42",
			"start_date":  "2026-07-01",
			"end_date":    "2026-07-08T00:00:00.000Z",
			"total_price": "700.5",
		},
	}
}

func deliver(h *Handler, payload []byte, signature string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/functions/v1/stripe-webhook", h.StripeWebhook)

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/stripe-webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubscriptionCheckoutUpsertsOnce(t *testing.T) {
	f := storetest.New()
	h := NewHandler(f, secret, nil)
	payload := eventPayload(t, "checkout.session.completed", subscriptionSession("Premium"))

	for i := 0; i < 2; i++ {
		w := deliver(h, payload, sign(payload, secret))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"received":true}`, w.Body.String())
	}

	require.Len(t, f.Subscriptions, 1)
	sub := f.Subscriptions[userID]
	assert.Equal(t, "premium", sub.Plan)
	assert.Equal(t, billing.StatusActive, sub.Status)
	assert.Equal(t, "sub_123", sub.StripeSubscriptionID)
	assert.Equal(t, 2, f.Calls["UpsertSubscription"])
}

func TestSubscriptionCheckoutDefaultsToBasico(t *testing.T) {
	f := storetest.New()
	payload := eventPayload(t, "checkout.session.completed", subscriptionSession(""))

	w := deliver(NewHandler(f, secret, nil), payload, sign(payload, secret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "básico", f.Subscriptions[userID].Plan)
}

func TestLaterSubscriptionEventWins(t *testing.T) {
	f := storetest.New()
	h := NewHandler(f, secret, nil)

	for _, plan := range []string{"básico", "diamante"} {
		payload := eventPayload(t, "checkout.session.completed", subscriptionSession(plan))
		require.Equal(t, http.StatusOK, deliver(h, payload, sign(payload, secret)).Code)
	}

	require.Len(t, f.Subscriptions, 1)
	assert.Equal(t, "diamante", f.Subscriptions[userID].Plan)
}

func TestBookingCheckoutInsertsPerDelivery(t *testing.T) {
	f := storetest.New()
	h := NewHandler(f, secret, nil)
	payload := eventPayload(t, "checkout.session.completed", bookingSession())

	for i := 0; i < 2; i++ {
		w := deliver(h, payload, sign(payload, secret))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	require.Len(t, f.Bookings, 2)
	b := f.Bookings[0]
	assert.Equal(t, uint(42), b.ListingID)
	assert.Equal(t, userID, b.UserID)
	assert.True(t, b.DepositPaid)
	assert.Equal(t, bookings.StatusConfirmed, b.Status)
	assert.Equal(t, 700.5, b.TotalPrice)
	assert.Equal(t, "2026-07-01", b.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-07-08", b.EndDate.Format("2006-01-02"))
	assert.Equal(t, "cs_pay_1", b.StripeSessionID)
}

func TestTamperedPayloadIsRejected(t *testing.T) {
	f := storetest.New()
	h := NewHandler(f, secret, nil)
	payload := eventPayload(t, "checkout.session.completed", subscriptionSession("premium"))
	signature := sign(payload, secret)

	tampered := bytes.Replace(payload, []byte("premium"), []byte("diamante"), 1)
	w := deliver(h, tampered, signature)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = deliver(h, payload, sign(payload, "whsec_other"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = deliver(h, payload, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, f.WriteCount())
	assert.Zero(t, f.Calls["UpsertSubscription"])
}

func TestUnrelatedEventIsAcknowledged(t *testing.T) {
	f := storetest.New()
	payload := eventPayload(t, "customer.subscription.deleted", map[string]interface{}{
		"id":       "sub_123",
		"object":   "subscription",
		"metadata": map[string]interface{}{"user_id": userID},
	})

	w := deliver(NewHandler(f, secret, nil), payload, sign(payload, secret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
	assert.Zero(t, f.WriteCount())
}

func TestOtherCheckoutModeIsAcknowledged(t *testing.T) {
	f := storetest.New()
	payload := eventPayload(t, "checkout.session.completed", map[string]interface{}{
		"id":     "cs_setup_1",
		"object": "checkout.session",
		"mode":   "setup",
	})

	w := deliver(NewHandler(f, secret, nil), payload, sign(payload, secret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, f.WriteCount())
}

func TestMissingMetadataFails(t *testing.T) {
	f := storetest.New()
	h := NewHandler(f, secret, nil)

	noUser := subscriptionSession("premium")
	noUser["metadata"] = map[string]interface{}{"plan_name": "premium"}
	payload := eventPayload(t, "checkout.session.completed", noUser)
	w := deliver(h, payload, sign(payload, secret))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing user_id")

	partial := bookingSession()
	delete(partial["metadata"].(map[string]interface{}), "end_date")
	delete(partial["metadata"].(map[string]interface{}), "total_price")
	payload = eventPayload(t, "checkout.session.completed", partial)
	w = deliver(h, payload, sign(payload, secret))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "end_date, total_price")

	assert.Zero(t, f.WriteCount())
}

func TestStoreFailureSurfaces(t *testing.T) {
	f := storetest.New()
	f.Fail("InsertBooking", storetest.ErrUnavailable)
	payload := eventPayload(t, "checkout.session.completed", bookingSession())

	w := deliver(NewHandler(f, secret, nil), payload, sign(payload, secret))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "failed to insert booking")
	assert.Empty(t, f.Bookings)
}
