package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davsiu2102/clinical-records-api/internal/api"
	"github.com/davsiu2102/clinical-records-api/internal/infrastructure/config"
	"github.com/davsiu2102/clinical-records-api/internal/infrastructure/db/postgres"
	"github.com/davsiu2102/clinical-records-api/internal/pkg/token"
	"github.com/davsiu2102/clinical-records-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger options depend on config; fall back to a plain stderr write.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("token codec setup failed")
	}

	e := api.NewRouter(api.Deps{
		DB:       db,
		Users:    postgres.NewUserRepository(db),
		Patients: postgres.NewPatientRepository(db),
		Codec:    codec,
		Logger:   log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
