// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the emotion detector (external collaborator client)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deppfellow/emotion-detector/internal/config"
	"github.com/deppfellow/emotion-detector/internal/lib/emotion"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/emotion-detector/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. Every field is read-only after New
// returns, so handlers may share it across concurrent requests.
type Server struct {
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application. GetApplication
	// returns nil when APM is disabled.
	LoggerService *loggerPkg.LoggerService

	// Detector is the emotion-classification collaborator.
	Detector emotion.Detector

	// httpServer is configured in SetupHTTPServer and started in Start().
	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server. That is done in SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	detector, err := emotion.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize emotion detector: %w", err)
	}

	logger.Info().
		Str("provider", cfg.Detector.Provider).
		Dur("timeout", cfg.Detector.Timeout).
		Msg("emotion detector initialized")

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Detector:      detector,
	}, nil
}

// SetupHTTPServer configures the internal net/http server.
//
// The router is passed in as handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    s.Config.Server.Address(),
		Handler: handler,

		// Config stores int values, interpreted here as seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops.
//
// It requires SetupHTTPServer to be called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("address", s.httpServer.Addr).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done, closes the detector and flushes New Relic data.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	// Detectors holding long-lived connections implement io.Closer.
	if closer, ok := s.Detector.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.Logger.Warn().Err(err).Msg("failed to close emotion detector")
		}
	}

	s.LoggerService.Shutdown()

	return nil
}
