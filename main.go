package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gomeraway-api/config"
	"gomeraway-api/database"
	adminapi "gomeraway-api/internal/api/admin"
	listingsapi "gomeraway-api/internal/api/listings"
	routes "gomeraway-api/internal/app/http"
	"gomeraway-api/internal/infra/limitgate"
	stripeinfra "gomeraway-api/internal/infra/stripe"
	"gomeraway-api/internal/infra/supabase"
	"gomeraway-api/internal/limits"
	"gomeraway-api/internal/logging"
	"gomeraway-api/internal/prefetch"
	"gomeraway-api/internal/preload"
	"gomeraway-api/internal/session"
	"gomeraway-api/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg.DBURL, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	st := store.New(db)

	verifier, err := supabase.NewVerifier(cfg.SupabaseJWTSecret, cfg.SupabaseJWKSURL)
	if err != nil {
		log.Fatal("token verifier init failed", zap.Error(err))
	}

	var authProbe adminapi.AuthProbe
	if cfg.SupabaseServiceKey != "" {
		authProbe = supabase.NewAuthAdmin(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	}

	var gate listingsapi.Gate = limits.New(st)
	if cfg.LimitGateURL != "" {
		gate = limitgate.New(cfg.LimitGateURL, cfg.SupabaseAnonKey, limitgate.WithLogger(log))
		log.Info("listing limit checks delegated", zap.String("url", cfg.LimitGateURL))
	}

	queue := prefetch.NewQueue(cfg.PrefetchWorkers, log, prefetch.WithMaxPending(cfg.PrefetchMaxPending))
	defer queue.Close()

	stripeClient := stripeinfra.NewClient(cfg.StripeSecretKey)

	router := routes.NewRouter(routes.Deps{
		Store:         st,
		Log:           log,
		Verifier:      verifier,
		Gateway:       stripeClient,
		StripePrices:  stripeClient,
		Prices:        cfg.PriceFor,
		Gate:          gate,
		AuthProbe:     authProbe,
		Sessions:      session.NewManager(st, session.NewHub(), log),
		Hinter:        preload.New(queue, st, cfg.SupabaseURL, cfg.StorageBucket, log),
		SiteURL:       cfg.SiteURL,
		WebhookKey:    cfg.StripeWebhookSecret,
		StorageBase:   cfg.SupabaseURL,
		StorageBucket: cfg.StorageBucket,
	})

	// Request contexts hang off baseCtx so open event streams end on shutdown.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	log.Info("shutting down")
	cancelBase()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
