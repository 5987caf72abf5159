package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/venuescope/venuesync/pkg/cli/config"
	httpctrl "github.com/venuescope/venuesync/pkg/controller/http"
	"github.com/venuescope/venuesync/pkg/service/worker"
	"github.com/venuescope/venuesync/pkg/usecase"
	"github.com/venuescope/venuesync/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var interval time.Duration
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var sourcesCfg config.Sources

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("VENUESYNC_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "sync-interval",
			Usage:       "Interval between scheduled sync runs",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("VENUESYNC_SYNC_INTERVAL"),
			Destination: &interval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, sourcesCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Run the sync pipeline on a schedule with a status/search API",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sources, err := sourcesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load sync sources")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			embedder, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure embedding service")
			}

			uc := usecase.New(repo, embedder)

			syncWorker := worker.NewSyncWorker(uc.Import, sources, interval)
			if err := syncWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start sync worker")
			}

			httpHandler, err := httpctrl.New(uc, httpctrl.WithSyncTrigger(syncWorker))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				syncWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop the sync worker first so an in-flight run completes
				syncWorker.Stop()

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
