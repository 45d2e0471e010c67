// Package server provides the HTTP server implementation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/storefrontdev/storefront/internal/auth"
	"github.com/storefrontdev/storefront/internal/config"
	"github.com/storefrontdev/storefront/internal/handler"
	"github.com/storefrontdev/storefront/internal/middleware"
	"github.com/storefrontdev/storefront/internal/repository"
	"github.com/storefrontdev/storefront/internal/storage"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	config     *config.Config
	logger     *zap.Logger
	events     *handler.EventHub
}

// New creates a new Server instance wired to the given store.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	store storage.Store,
	tokens *auth.TokenManager,
	hasher *auth.Hasher,
) *Server {
	router := mux.NewRouter()

	s := &Server{
		router: router,
		config: cfg,
		logger: logger,
		events: handler.NewEventHub(logger),
	}

	s.setupMiddleware()
	s.setupRoutes(store, tokens, hasher)
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures the middleware chain.
func (s *Server) setupMiddleware() {
	allowedOrigins := []string{"*"}
	allowedMethods := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowedHeaders := []string{
		"Content-Type",
		"Authorization",
		middleware.RequestIDHeader,
	}

	// Apply middleware in order (first applied = outermost)
	s.router.Use(mux.MiddlewareFunc(middleware.Recovery(s.logger)))
	s.router.Use(mux.MiddlewareFunc(middleware.RequestID()))

	if s.config.MetricsEnabled {
		s.router.Use(mux.MiddlewareFunc(middleware.Metrics()))
	}

	s.router.Use(mux.MiddlewareFunc(middleware.Logging(s.logger)))
	s.router.Use(mux.MiddlewareFunc(middleware.CORS(allowedOrigins, allowedMethods, allowedHeaders)))
}

// setupRoutes configures the API routes. The static frontend is
// registered last so API routes always match first.
func (s *Server) setupRoutes(store storage.Store, tokens *auth.TokenManager, hasher *auth.Hasher) {
	users := repository.NewUsers(store, hasher)
	products := repository.NewProducts(store)
	customers := repository.NewCustomers(store)
	orders := repository.NewOrders(store)

	requireAuth := middleware.RequireAuth(tokens, s.logger)
	requireAdmin := middleware.RequireAdmin(s.logger)

	handler.NewAuthHandler(users, hasher, tokens, s.logger).
		RegisterRoutes(s.router, requireAuth, requireAdmin)
	handler.NewProductHandler(products, s.events, s.logger).
		RegisterRoutes(s.router)
	handler.NewCustomerHandler(customers, s.events, s.logger).
		RegisterRoutes(s.router)
	handler.NewOrderHandler(orders, customers, s.events, s.logger).
		RegisterRoutes(s.router)

	s.events.RegisterRoutes(s.router)

	s.router.HandleFunc("/health", s.healthCheck).Methods(http.MethodGet)

	if s.config.MetricsEnabled {
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	if s.config.WebDir != "" {
		s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.config.WebDir)))
	}
}

// healthCheck handles GET /health requests.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}` + "\n"))
}

// setupHTTPServer configures the HTTP server.
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server",
		zap.String("address", s.config.Address()),
		zap.Bool("metrics_enabled", s.config.MetricsEnabled),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	// Disconnect event subscribers first
	s.events.CloseAll()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Router returns the server's router for testing purposes.
func (s *Server) Router() *mux.Router {
	return s.router
}
