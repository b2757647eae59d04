package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/edh-power/internal/api/handlers"
	"github.com/ramonehamilton/edh-power/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		analysisHandler := handlers.NewAnalysisHandler(s.analyzer, s.logger)
		r.Get("/analyze", analysisHandler.GetAnalysis)
		r.Post("/analyze", analysisHandler.PostAnalysis)

		if s.stats != nil {
			r.Get("/metrics", handlers.NewMetricsHandler(s.stats).GetMetrics)
		}

		userHandler := handlers.NewUserHandler(s.users)
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/{userID}", userHandler.GetUser)
		})

		systemHandler := handlers.NewSystemHandler(s.users != nil)
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", systemHandler.GetStatus)
			r.Get("/version", systemHandler.GetVersion)
		})
	})
}

// healthCheck returns a simple health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	})
}
