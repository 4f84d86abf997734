// Command console serves the AI Construction admin console.
//
// @title        AI Construction Admin Console
// @version      1.0
// @description  Session-gated admin console for the AI Construction platform.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/api"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/api/middleware"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/service"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/gateway"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/http/handlers"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/storage"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/pkg/config"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "console",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("console stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opened, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer opened.Close()
	log.Info().Str("store", cfg.Store.Backend).Str("location", opened.Location).Msg("credential store ready")

	routes := middleware.DefaultRoutes()
	store := storage.NewCredentialStore(opened.Area, logger.Component("storage"))
	authority := service.NewSessionAuthority(store, logger.Component("session")).WithSignInPath(routes.SignIn)
	gw := gateway.New(authority, gateway.Options{
		BaseURL: cfg.APIURL,
		Log:     logger.Component("gateway"),
	})

	// The guard subscribes before hydration so it sees the first transition.
	guard := middleware.NewGuard(authority, routes, logger.Component("guard"))
	defer guard.Close()

	checks := map[string]handlers.Check{}
	if opened.Ping != nil {
		checks["store"] = opened.Ping
	}

	e := api.NewRouter(api.Deps{
		Log:       log,
		Sessions:  authority,
		Gateway:   gw,
		Guard:     guard,
		Routes:    routes,
		Readiness: checks,
	})

	go func() {
		s := authority.Hydrate(ctx)
		log.Info().Str("status", string(s.Status)).Msg("session hydrated")
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", gw.BaseURL()).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
