package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	api "psiprobe-v0/internal/api/application"
	"psiprobe-v0/internal/api/handlers"
	apimiddleware "psiprobe-v0/internal/api/middleware"
	configapp "psiprobe-v0/internal/config/application"
	"psiprobe-v0/internal/infrastructure/logger"
	pressureapp "psiprobe-v0/internal/pressure/application"
)

// Server exposes the pressure check over HTTP. Every request runs a
// fresh snapshot evaluation; the server holds no state between requests.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer creates a new API server
func NewServer(
	appLogger *logger.Logger,
	runtimeCfg *configapp.RuntimeConfig,
	checkService *pressureapp.Service,
) (*Server, error) {
	if err := runtimeCfg.ValidateServe(); err != nil {
		return nil, err
	}

	pressureHandler := handlers.NewPressureHandler(appLogger, checkService)

	// Setup chi router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(httplog.RequestLogger(appLogger.SLog(), &httplog.Options{
		Level:             slog.LevelDebug,
		Schema:            httplog.SchemaECS.Concise(true),
		LogRequestHeaders: []string{}, // Log no headers by default to reduce verbosity
	}))

	// Liveness probe, no auth
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	})

	// API v1 routes (with authentication outside dev mode)
	r.Route("/api/v1", func(r chi.Router) {
		if !runtimeCfg.DevMode {
			r.Use(apimiddleware.APIKeyAuthWithKey(runtimeCfg.APIKey))
		}

		r.Get("/pressure/{class}", pressureHandler.Check)
	})

	httpServer := &http.Server{
		Addr:         ":" + runtimeCfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	appLogger.Debug("Server configured",
		"port", runtimeCfg.APIPort,
		"dev_mode", runtimeCfg.DevMode,
		"middleware", []string{"RequestID", "RealIP", "Recoverer", "httplog"},
	)

	return &Server{
		httpServer: httpServer,
		logger:     appLogger,
	}, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error("Server error", "err", err)
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server shutdown error", "err", err)
	} else {
		s.logger.Info("Server shutdown complete")
	}
	return err
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
