package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nauticalab/envschema/internal/auth"
	"github.com/nauticalab/envschema/internal/k8s"
	"github.com/nauticalab/envschema/pkg/schema"
)

// Server represents the HTTP API server
type Server struct {
	router    *chi.Mux
	handler   *Handler
	providers map[string]auth.AuthProvider
	addr      string
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port int
	// Schema is the tree snapshots are checked against
	Schema schema.Object
	// Template overrides the served help text, e.g. with a stamped one
	Template string
	// K8sClient enables the cluster endpoints when set
	K8sClient *k8s.Client
	// Providers protect every endpoint but health and version; none
	// leaves the API open
	Providers map[string]auth.AuthProvider
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// NewServer creates a new API server with the given configuration
func NewServer(config ServerConfig) (*Server, error) {
	if len(config.Schema.FieldNames()) == 0 {
		return nil, fmt.Errorf("schema has no fields")
	}

	handler := NewHandler(
		config.Schema,
		config.Template,
		config.K8sClient,
		config.Version,
		config.GitCommit,
		config.BuildTime,
		config.GoVersion,
	)

	router := chi.NewRouter()
	setupMiddleware(router)
	setupRoutes(router, handler, config.Providers)

	return &Server{
		router:    router,
		handler:   handler,
		providers: config.Providers,
		addr:      fmt.Sprintf(":%d", config.Port),
	}, nil
}

// Handler returns the server's root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures the middleware chain
func setupMiddleware(router *chi.Mux) {
	// Request logger
	router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.Default(),
		NoColor: false,
	}))

	// Recoverer from panics
	router.Use(middleware.Recoverer)

	// Timeout for requests
	router.Use(middleware.Timeout(60 * time.Second))
}

// setupRoutes configures the API routes
func setupRoutes(router chi.Router, handler *Handler, providers map[string]auth.AuthProvider) {
	router.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Get("/health", handler.Health)
		r.Get("/version", handler.Version)

		// Protected endpoints when providers are configured
		r.Group(func(r chi.Router) {
			if len(providers) > 0 {
				r.Use(auth.Middleware(providers))
				r.Get("/auth/whoami", handler.WhoAmI)
			}

			r.Get("/template", handler.Template)
			r.Get("/schema", handler.Schema)
			r.Post("/check", handler.Check)
			r.Get("/check/configmaps/{namespace}/{name}", handler.CheckConfigMap)
		})
	})
}

// StartWithContext starts the HTTP server with graceful shutdown support
func (s *Server) StartWithContext(ctx context.Context) error {
	log.Printf("Starting API server on %s", s.addr)
	log.Printf("Registered auth providers: %v", s.getProviderNames())

	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to signal server errors
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Server listening on %s", s.addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
			return err
		}

		log.Println("Server stopped gracefully")
		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// getProviderNames returns a sorted list of registered provider names
func (s *Server) getProviderNames() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
