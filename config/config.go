package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every environment-provided setting. Secrets are only ever read
// from the environment (or a local .env during development).
type Config struct {
	Port   string
	AppEnv string
	DBURL  string

	SiteURL string

	StripeSecretKey     string
	StripeWebhookSecret string
	StripePrices        map[string]string

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	SupabaseJWTSecret  string
	SupabaseJWKSURL    string
	StorageBucket      string

	// LimitGateURL, when set, sends listing-limit checks for listing creation
	// to a remote check-listing-limit function instead of evaluating locally.
	LimitGateURL string

	PrefetchWorkers    int
	PrefetchMaxPending int
	LogLevel           string
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("SITE_URL", "http://localhost:5173")
	v.SetDefault("STORAGE_BUCKET", "listing-images")
	v.SetDefault("PREFETCH_WORKERS", 4)
	v.SetDefault("PREFETCH_MAX_PENDING", 256)
	v.SetDefault("LOG_LEVEL", "info")

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:   v.GetString("PORT"),
		AppEnv: v.GetString("APP_ENV"),
		DBURL:  v.GetString("DB_URL"),

		SiteURL: strings.TrimRight(v.GetString("SITE_URL"), "/"),

		StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),
		StripePrices: map[string]string{
			"básico":   v.GetString("STRIPE_PRICE_BASICO"),
			"premium":  v.GetString("STRIPE_PRICE_PREMIUM"),
			"diamante": v.GetString("STRIPE_PRICE_DIAMANTE"),
		},

		SupabaseURL:        strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseAnonKey:    v.GetString("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: v.GetString("SUPABASE_SERVICE_KEY"),
		SupabaseJWTSecret:  v.GetString("SUPABASE_JWT_SECRET"),
		SupabaseJWKSURL:    v.GetString("SUPABASE_JWKS_URL"),
		StorageBucket:      v.GetString("STORAGE_BUCKET"),

		LimitGateURL: strings.TrimRight(v.GetString("LIMIT_GATE_URL"), "/"),

		PrefetchWorkers:    v.GetInt("PREFETCH_WORKERS"),
		PrefetchMaxPending: v.GetInt("PREFETCH_MAX_PENDING"),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}
}

// IsDevelopment reports whether the service runs with APP_ENV=development.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// Validate reports every missing required variable at once.
func (c *Config) Validate() error {
	var errs []error
	required := map[string]string{
		"DB_URL":                c.DBURL,
		"STRIPE_SECRET_KEY":     c.StripeSecretKey,
		"STRIPE_WEBHOOK_SECRET": c.StripeWebhookSecret,
		"SUPABASE_URL":          c.SupabaseURL,
	}
	for _, key := range []string{"DB_URL", "STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "SUPABASE_URL"} {
		if required[key] == "" {
			errs = append(errs, fmt.Errorf("missing required environment variable: %s", key))
		}
	}
	if c.SupabaseJWTSecret == "" && c.SupabaseJWKSURL == "" {
		errs = append(errs, errors.New("one of SUPABASE_JWT_SECRET or SUPABASE_JWKS_URL must be set"))
	}
	return errors.Join(errs...)
}

// PriceFor returns the Stripe price configured for a plan type.
func (c *Config) PriceFor(planType string) (string, bool) {
	price, ok := c.StripePrices[strings.ToLower(strings.TrimSpace(planType))]
	if !ok || price == "" {
		return "", false
	}
	return price, true
}
