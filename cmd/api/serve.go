package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/spf13/cobra"

	"github.com/calendario-app/calendario-backend/config"
	"github.com/calendario-app/calendario-backend/internal/auth"
	"github.com/calendario-app/calendario-backend/internal/bootstrap"
	"github.com/calendario-app/calendario-backend/internal/db"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	// Without credentials every token is rejected as "provider unavailable".
	var fbClient *fbauth.Client
	if fbClient, err = auth.InitializeFirebase(ctx, &cfg.Firebase); err != nil {
		log.Printf("[warn] operation=serve firebase disabled: %v", err)
		fbClient = nil
	}

	cache, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("[warn] operation=serve token cache disabled: %v", err)
		cache = nil
	}
	if cache != nil {
		defer cache.Close()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             database.Pool,
		Cache:          cache,
		TokenTTL:       cfg.Redis.TokenTTL,
		Verifier:       auth.NewFirebaseVerifier(fbClient),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] %s %s listening on %s", cfg.App.ServiceName, cfg.App.Version, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[info] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
