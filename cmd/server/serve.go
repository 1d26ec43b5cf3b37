package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/storefront/internal/catalog"
	"github.com/storefront/internal/db"
	"github.com/storefront/internal/handler"
	"github.com/storefront/internal/metrics"
	"github.com/storefront/internal/router"
	"github.com/storefront/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabaseDriver, cfg.DatabaseTarget()); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	created, err := db.EnsureUser(db.DB, cfg.SuperRootUserName, cfg.SuperRootPassword)
	if err != nil {
		return fmt.Errorf("ensure super root user: %w", err)
	}
	if created {
		log.Info().Str("username", cfg.SuperRootUserName).Msg("created super root user")
	}

	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.CatalogPath).Msg("product catalog unavailable, serving an empty list")
		products = catalog.New(nil)
	}

	reg := metrics.New()
	api := handler.NewAPI(db.DB, store.Instrument(store.NewGormStore(db.DB), reg), products, reg)
	api.Attach(ctx)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(api, cfg.SessionSecret, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Int("products", products.Len()).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("run server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("shutting down")
	return srv.Shutdown(shutdownCtx)
}
