package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-emoji-video/api"
	"github.com/gcbaptista/go-emoji-video/internal/analytics"
	"github.com/gcbaptista/go-emoji-video/internal/engine"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var lazy bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, err := openEngine(engine.WithAnalytics(analytics.NewService()))
			if err != nil {
				return err
			}
			defer eng.Close()

			if !lazy {
				// A broken lexicon is a start-up failure, not a per-request one.
				if err := eng.Load(); err != nil {
					return err
				}
				stats, _ := eng.Stats()
				log.Printf("Info: Lexicon loaded: %d glyphs, %d keywords, %d/%d priority phrases",
					stats.Glyphs, stats.Keywords, stats.TwoPhrases, stats.ThreePhrases)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, eng)
		},
	}

	cmd.Flags().BoolVar(&lazy, "lazy", false, "Load the lexicon on the first request instead of at start-up")

	return cmd
}

func serve(ctx context.Context, eng *engine.Engine) error {
	settings := eng.Settings()

	router := gin.Default()
	router.Use(
		api.RequestIDMiddleware(),
		api.CORSMiddleware(),
		api.RequestSizeLimitMiddleware(settings.Server.MaxBodyBytes),
	)
	api.SetupRoutes(router, eng)

	httpServer := &http.Server{
		Addr:              settings.Server.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s...", settings.Server.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
