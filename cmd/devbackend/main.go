// Command devbackend runs a local stand-in for the platform backend.
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

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/ports"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/devbackend"
	mongodb "github.com/Nouman-Qamar/Ai-Construction-Admin/internal/infrastructure/db/mongo"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/pkg/config"
	"github.com/Nouman-Qamar/Ai-Construction-Admin/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "devbackend",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("devbackend stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var users ports.UserRepository = devbackend.NewMemoryUsers()
	if cfg.DevBackend.Store == "mongo" {
		store, err := mongodb.Open(ctx, mongodb.Config{
			URI:      cfg.DevBackend.MongoURI,
			Database: cfg.DevBackend.MongoDatabase,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}()
		users = store.Users()
	}

	accounts := devbackend.NewAccounts(users, cfg.DevBackend.JWTSecret, 24*time.Hour)
	records := devbackend.NewRecords()
	if err := devbackend.Seed(ctx, accounts, records, cfg.DevBackend.AdminEmail, cfg.DevBackend.AdminPassword); err != nil {
		return err
	}
	log.Info().Str("email", cfg.DevBackend.AdminEmail).Str("store", cfg.DevBackend.Store).Msg("admin account seeded")

	e := devbackend.NewServer(devbackend.Options{
		Accounts:  accounts,
		Records:   records,
		JWTSecret: cfg.DevBackend.JWTSecret,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.DevBackend.Port).Msg("devbackend listening")
		if err := e.Start(":" + cfg.DevBackend.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
