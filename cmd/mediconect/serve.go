package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/janmalik2800/Antigravity-web/internal/handler"
	"github.com/janmalik2800/Antigravity-web/internal/logger"
	"github.com/janmalik2800/Antigravity-web/internal/router"
	"github.com/janmalik2800/Antigravity-web/internal/server"
	"github.com/janmalik2800/Antigravity-web/internal/service"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			loggerService := logger.NewLoggerService(cfg.Observability)
			defer loggerService.Shutdown()

			log := logger.NewLoggerWithService(cfg.Observability, loggerService)

			srv, err := server.New(cfg, &log, loggerService)
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}

			services := service.NewServices(srv)
			handlers := handler.NewHandlers(srv, services)
			srv.SetupHTTPServer(router.NewRouter(srv, handlers))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			select {
			case err := <-serveErr:
				return fmt.Errorf("failed to start server: %w", err)
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			log.Info().Msg("server exited properly")
			return nil
		},
	}
}
