package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// NewHTTPServer wires the question bank routes plus health and metrics
// endpoints. Every response carries CORS headers so browser frontends on
// other origins can call the API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers *trivia.HTTPHandlers) *http.Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(requestMetrics)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/categories", handlers.GetCategories)
	r.Get("/categories/{id}/questions", handlers.GetQuestionsByCategory)
	r.Get("/questions", handlers.ListQuestions)
	r.Post("/questions", handlers.CreateQuestion)
	r.Delete("/questions/{id}", handlers.DeleteQuestion)
	r.Post("/questions/search", handlers.SearchQuestions)
	r.Post("/quizzes", handlers.PlayQuiz)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
}
