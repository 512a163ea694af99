package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/bootstrap"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/config"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/db"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/helpers"
)

// Server holds the state for the HTTP server and the background scheduler.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	deps     *bootstrap.Dependencies
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config:   cfg,
		router:   bootstrap.SetupRouter(cfg, deps, lgr),
		database: database,
		deps:     deps,
		logger:   lgr,
	}, nil
}

// Run starts the HTTP server and the scheduler, then blocks until shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 30*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 120*time.Second),
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	if s.deps.Scheduler != nil {
		s.deps.Scheduler.Start()
		s.logger.Info().Str("spec", s.config.Scheduler.Spec).Str("timezone", s.config.Scheduler.Timezone).Msg("Deadline scheduler started")
		if s.config.Scheduler.RunOnStart {
			go bootstrap.RunStartupSweep(s.deps.Scheduler, s.logger)
		}
	}

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	if err := s.Shutdown(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown stops the scheduler, drains HTTP requests and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, helpers.ParseDuration(s.config.Server.ShutdownTimeout, 15*time.Second))
	defer cancel()

	var errs []error

	if s.deps.Scheduler != nil {
		s.logger.Info().Msg("Stopping scheduler...")
		if err := s.deps.Scheduler.Stop(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Scheduler stop error")
			errs = append(errs, err)
		}
	}

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if err := s.deps.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to close dependencies")
		errs = append(errs, err)
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if len(errs) > 0 {
		return fmt.Errorf("server shutdown completed with errors: %w", errors.Join(errs...))
	}
	return nil
}
