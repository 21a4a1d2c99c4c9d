package routes

import (
	"net/http"

	adminapi "gomeraway-api/internal/api/admin"
	"gomeraway-api/internal/api/billing"
	listingsapi "gomeraway-api/internal/api/listings"
	plansapi "gomeraway-api/internal/api/plans"
	preloadapi "gomeraway-api/internal/api/preload"
	stripewebhooks "gomeraway-api/internal/api/stripewebhook"
	"gomeraway-api/internal/api/users"
	"gomeraway-api/internal/app/http/middleware"
	stripeinfra "gomeraway-api/internal/infra/stripe"
	"gomeraway-api/internal/infra/supabase"
	"gomeraway-api/internal/limits"
	"gomeraway-api/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store is every read and write the HTTP surface needs.
type Store interface {
	adminapi.Store
	listingsapi.Store
	users.Store
	stripewebhooks.Store
	limits.Store
}

type Deps struct {
	Store        Store
	Log          *zap.Logger
	Verifier     supabase.Verifier
	Gateway      stripeinfra.Gateway
	Prices       billing.PriceLookup
	Gate         listingsapi.Gate
	AuthProbe    adminapi.AuthProbe
	StripePrices plansapi.PriceSource
	Sessions     *session.Manager
	Hinter       preloadapi.Hinter
	SiteURL      string
	WebhookKey   string

	StorageBase   string
	StorageBucket string
}

// NewRouter builds the engine with the shared middleware chain.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := gin.New()
	r.Use(
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORS(),
		middleware.Identify(d.Verifier, d.Log),
	)
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	limitSvc := limits.New(d.Store)
	gate := d.Gate
	if gate == nil {
		gate = limitSvc
	}

	billingH := billing.NewHandler(d.Gateway, d.Prices, d.SiteURL, d.Log)
	webhookH := stripewebhooks.NewHandler(d.Store, d.WebhookKey, d.Log)
	listingsH := listingsapi.NewHandler(d.Store, limitSvc, gate, d.StorageBase, d.StorageBucket, d.Log)
	usersH := users.NewHandler(d.Store, d.Sessions, d.Log)
	adminH := adminapi.NewHandler(d.Store, limitSvc, d.AuthProbe, d.Log)

	// The webhook verifies the raw body, so it never goes through sanitizing.
	r.POST("/functions/v1/stripe-webhook", webhookH.StripeWebhook)
	r.POST("/webhook", webhookH.StripeWebhook)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/plans", billingH.ListPlans)
	if d.Hinter != nil {
		r.GET("/preload", preloadapi.NewHandler(d.Hinter).Preload)
	}

	// Function endpoints answer anonymous calls themselves.
	functions := r.Group("/functions/v1")
	functions.Use(middleware.SanitizeAndCleanInputMiddleware())
	functions.GET("/check-listing-limit", listingsH.CheckListingLimit)
	functions.POST("/check-listing-limit", listingsH.CheckListingLimit)
	functions.POST("/create-checkout-session", billingH.CreateCheckoutSession)
	functions.POST("/create-booking-checkout", billingH.CreateBookingCheckout)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.RequireIdentity(), middleware.SanitizeAndCleanInputMiddleware())
	auth.POST("/session/sync", usersH.SyncSession)
	auth.GET("/session/events", usersH.SessionEvents)
	auth.GET("/me", usersH.GetCurrentUser)
	auth.PATCH("/profile", usersH.UpdateProfile)
	auth.GET("/profile/completion", usersH.ProfileCompletion)

	auth.POST("/listings", listingsH.CreateListing)
	auth.GET("/listings/mine", listingsH.MyListings)
	auth.PATCH("/listings/:id/active", listingsH.SetActive)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.RequireIdentity(), middleware.RequireAdmin(d.Store))
	admin.GET("/dashboard", adminH.GetAdminStats)
	admin.GET("/users", adminH.ListAllUsers)
	admin.GET("/bookings", adminH.ListAllBookings)
	admin.GET("/debug/ping", adminH.Ping)
	admin.GET("/debug/profile/:id", adminH.GetProfile)
	admin.GET("/debug/subscription/:user_id", adminH.GetSubscription)
	admin.GET("/debug/limit/:user_id", adminH.GetLimit)
	admin.GET("/debug/auth", adminH.AuthSettings)
	if d.StripePrices != nil {
		admin.GET("/debug/prices", plansapi.NewHandler(d.StripePrices, d.Prices, d.Log).CheckPrices)
	}
}
