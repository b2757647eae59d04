package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ramonehamilton/edh-power/internal/api/handlers"
)

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	port       int
	logger     *zap.Logger

	allowedOrigins []string
	requestTimeout time.Duration

	analyzer handlers.DeckAnalyzer
	stats    handlers.StatsSource
	users    handlers.UserStore
}

// Config holds configuration for the API server.
type Config struct {
	Port           int
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port: 3000,
		AllowedOrigins: []string{
			"http://localhost:4200",
			"http://localhost:8100",
			"http://localhost:3000",
			"http://localhost:3001",
			"https://app.omenpro.com",
			"https://api.omenpro.com",
		},
		RequestTimeout: 60 * time.Second,
	}
}

// Dependencies are the services the handlers delegate to. Users may be nil,
// in which case the user endpoints answer 503.
type Dependencies struct {
	Analyzer handlers.DeckAnalyzer
	Stats    handlers.StatsSource
	Users    handlers.UserStore
}

// NewServer creates a new API server.
func NewServer(cfg *Config, deps Dependencies, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().RequestTimeout
	}

	s := &Server{
		router:         chi.NewRouter(),
		port:           cfg.Port,
		logger:         logger,
		allowedOrigins: cfg.AllowedOrigins,
		requestTimeout: timeout,
		analyzer:       deps.Analyzer,
		stats:          deps.Stats,
		users:          deps.Users,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.requestTimeout))

	// Requests without an Origin header (curl, server to server) pass through.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(s.jsonContentTypeMiddleware)
}

// requestLogger logs one line per request through zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// jsonContentTypeMiddleware enforces application/json content-type for requests with bodies.
func (s *Server) jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until Shutdown is called. It returns nil after a
// graceful shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("API server starting", zap.Int("port", s.port))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Serve serves on an existing listener.
func (s *Server) Serve(l net.Listener) error {
	err := s.httpServer.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Port returns the port the server is configured to listen on.
func (s *Server) Port() int {
	return s.port
}
