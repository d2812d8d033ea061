// Package server defines the Server container that holds the app's shared
// dependencies and runs the HTTP server.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the integration registry (lead store, Resend, SmartEmailing)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/janmalik2800/Antigravity-web/internal/config"
	"github.com/janmalik2800/Antigravity-web/internal/integration"
	loggerPkg "github.com/janmalik2800/Antigravity-web/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application; its app is nil when disabled.
	LoggerService *loggerPkg.LoggerService

	// Integrations builds third-party clients on first use.
	Integrations *integration.Registry

	httpServer *http.Server
}

// New constructs a Server. No outbound connection is opened here: missing or
// broken integrations surface per request, never at boot.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Integrations:  integration.NewRegistry(cfg, logger, loggerService),
	}, nil
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("lead_store_driver", s.Config.LeadStore.Driver).
		Msg("starting server")

	if missing := s.Config.MissingLeadSecrets(); len(missing) > 0 {
		s.Logger.Warn().Strs("missing", missing).Msg("lead intake is not configured, /api/contact will fail")
	}
	if missing := s.Config.MissingNewsletterSecrets(); len(missing) > 0 {
		s.Logger.Warn().Strs("missing", missing).Msg("newsletter is not configured, /api/newsletter will fail")
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones, then closes integrations.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if err := s.Integrations.Close(); err != nil {
		return fmt.Errorf("failed to close integrations: %w", err)
	}

	return nil
}
