package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medilink/directory/internal/api"
	"github.com/medilink/directory/internal/api/metrics"
	"github.com/medilink/directory/internal/api/middleware"
	"github.com/medilink/directory/internal/core/service"
	"github.com/medilink/directory/internal/infrastructure/config"
	"github.com/medilink/directory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Doctor Directory Identity API
// @version      1.0
// @description  Sign-in, session and doctor credential management for the doctor directory.
// @BasePath     /
// @securityDefinitions.apikey  ProviderToken
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "directory",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := openBackends(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer backends.close(log)

	resolver := service.NewIdentityResolver(backends.credentials, logger.Component("resolver"),
		service.WithOrphanHook(metrics.RecordOrphanedCredential))
	sessions := service.NewSessionManager(resolver, backends.sessions, logger.Component("session"))
	credentials := service.NewCredentialService(resolver, backends.credentials, sessions, logger.Component("credentials"))

	// An unreadable persisted session is reported but does not stop start-up;
	// the next login overwrites it.
	_, _ = sessions.Restore(ctx)

	router := api.NewRouter(api.Dependencies{
		Sessions:    sessions,
		Credentials: credentials,
		Health:      backends.health,
		ProviderToken: middleware.ProviderTokenConfig{
			Secret: cfg.ProviderToken.Secret,
			Issuer: cfg.ProviderToken.Issuer,
		},
		Log: logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Backend).
			Str("credentials", cfg.Storage.CredentialBackend).Msg("starting directory api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
