package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(s.recoverAndLog)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found")
	})

	r.Route("/api", func(r chi.Router) {
		// 100 requests per source IP every 15 minutes.
		r.Use(httprate.LimitByIP(100, 15*time.Minute))

		r.Get("/health", s.healthHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.signupHandler)
			r.Post("/login", s.loginHandler)
			r.Post("/forgot-password", s.forgotPasswordHandler)
			r.Post("/reset-password", s.resetPasswordHandler)
			r.With(s.requireSession).Post("/logout", s.logoutHandler)
			r.With(s.requireSession).Get("/me", s.currentUserHandler)
		})

		r.Route("/todos", func(r chi.Router) {
			r.Use(s.requireSession)
			r.Post("/", s.createTodoHandler)
			r.Get("/", s.listTodosHandler)
			r.Put("/{id}", s.updateTodoHandler)
			r.Delete("/{id}", s.deleteTodoHandler)
			r.Patch("/{id}/toggle", s.toggleTodoHandler)
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
