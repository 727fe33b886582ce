package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/crlapples/commerce/internal/api"
	"github.com/crlapples/commerce/internal/cart"
	"github.com/crlapples/commerce/internal/catalog"
	"github.com/crlapples/commerce/internal/checkout"
	"github.com/crlapples/commerce/internal/config"
	"github.com/crlapples/commerce/internal/db"
	"github.com/crlapples/commerce/internal/logger"
	"github.com/crlapples/commerce/internal/scope"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.Open(cfg.CartDBPath)
	if err != nil {
		log.Fatalf("Failed to open cart db: %v", err)
	}
	defer database.Close()

	if err := cart.InitSchema(database); err != nil {
		log.Fatalf("Failed to init cart schema: %v", err)
	}

	provider, err := catalog.NewProvider(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	sessions := cart.NewManager(
		func(scopeID string) cart.Store { return cart.NewSQLStore(database, scopeID) },
		provider,
		logger.L(),
	)

	gateway := checkout.NewPayPalGateway(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret)
	issuer := scope.NewIssuer(cfg.ScopeSecret)

	handler := api.NewHandler(provider, sessions, gateway)
	router := api.NewRouter(handler, issuer)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.L().Info("storefront server running", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Warn("server shutdown", zap.Error(err))
	}

	// Flush pending cart writes before the process exits.
	sessions.Shutdown()
}
