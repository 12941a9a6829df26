package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	apiHandlers "github.com/brownbull-back/internal/api/handlers"
	"github.com/brownbull-back/pkg/config"
	"github.com/brownbull-back/pkg/logger"
)

// ServiceStatus describes how the outbound integrations are configured
type ServiceStatus struct {
	SMTP         string `json:"smtp"`
	AlphaVantage string `json:"alpha_vantage"`
}

// Server represents the HTTP API server
type Server struct {
	cfg        *config.Config
	logger     *logrus.Logger
	router     *mux.Router
	handler    http.Handler
	httpServer *http.Server
	status     ServiceStatus

	// API handlers
	marketHandler  *apiHandlers.MarketHandler
	contactHandler *apiHandlers.ContactHandler
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	logger *logrus.Logger,
	market apiHandlers.SnapshotProvider,
	relay apiHandlers.FormRelay,
	status ServiceStatus,
) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		status: status,
	}

	s.marketHandler = apiHandlers.NewMarketHandler(market, logger)
	s.contactHandler = apiHandlers.NewContactHandler(relay, cfg.Server.MaxBodySize, logger)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	s.marketHandler.RegisterRoutes(api)
	s.contactHandler.RegisterRoutes(api)

	// Wrapped outside the router so preflight and unmatched requests see it too
	var h http.Handler = s.router
	h = s.recoveryMiddleware(h)
	if s.cfg.Security.CORSEnabled {
		h = s.corsMiddleware(h)
	}
	h = handlers.CompressHandler(h)
	h = logger.Middleware(s.logger)(h)
	h = logger.RequestID(h)

	s.handler = h
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server and blocks until it stops. It returns nil
// once Stop has been called, even if Stop ran first.
func (s *Server) Start() error {
	s.logger.WithField("address", s.httpServer.Addr).Info("Starting HTTP server")

	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		if strings.Contains(err.Error(), "address already in use") {
			return fmt.Errorf("port %d is already in use, use a different port: --port %d", s.cfg.Server.Port, s.cfg.Server.Port+1)
		}
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Middleware functions

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.WithFields(logrus.Fields{
					"error":      err,
					"path":       r.URL.Path,
					"request_id": logger.RequestIDFromContext(r.Context()),
				}).Error("Panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "Internal Server Error"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(s.cfg.Security.CORSOrigins),
		handlers.AllowedMethods(s.cfg.Security.CORSMethods),
		handlers.AllowedHeaders(s.cfg.Security.CORSHeaders),
		handlers.ExposedHeaders([]string{apiHandlers.SourceHeader, logger.RequestIDHeader}),
	)(next)
}

// Handler functions

// handleHealth reports process liveness and how integrations are configured
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"services":  s.status,
		"timestamp": time.Now().Unix(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
