package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/infra/metrics"
)

// ServerConfig represents server configuration
type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	CORSEnabled    bool
	AllowedOrigins []string
	Version        string
}

// Handlers groups the route handlers mounted by the server
type Handlers struct {
	Auth     *AuthHandler
	Incident *IncidentHandler
	User     *UserHandler
	Events   *EventsHandler
}

// Server represents the HTTP server
type Server struct {
	addr   string
	server *http.Server
	logger logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(config ServerConfig, handlers Handlers, log logger.Logger) *Server {
	addr := net.JoinHostPort(config.Host, config.Port)

	return &Server{
		addr:   addr,
		logger: log,
		server: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(config, handlers, log),
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// NewRouter builds the full handler chain
func NewRouter(config ServerConfig, handlers Handlers, log logger.Logger) http.Handler {
	router := mux.NewRouter()

	if handlers.Auth != nil {
		handlers.Auth.RegisterRoutes(router)
	}
	if handlers.Incident != nil {
		handlers.Incident.RegisterRoutes(router)
	}
	if handlers.User != nil {
		handlers.User.RegisterRoutes(router)
	}
	if handlers.Events != nil {
		handlers.Events.RegisterRoutes(router)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeSuccessResponse(w, http.StatusOK, "ok", map[string]string{
			"status":  "ok",
			"version": config.Version,
		})
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusNotFound, "route_not_found", "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	router.Use(metricsMiddleware)
	router.Use(loggingMiddleware(log))

	var handler http.Handler = router
	if config.CORSEnabled {
		handler = corsMiddleware(config.AllowedOrigins)(handler)
	}
	handler = recoveryMiddleware(log)(handler)
	handler = correlationMiddleware(handler)

	return handler
}

// Handler returns the root handler chain
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{"addr": s.addr})
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
