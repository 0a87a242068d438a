package http

import (
	"net/http"
	"time"

	"github.com/atinyakov/NoteShare/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler that serves the NoteShare API.
//
// Routes:
//
//	POST /api/register                  → authHandler.Register
//	POST /api/login                     → authHandler.Login
//	POST /api/logout                    → authHandler.Logout         (session)
//	GET  /api/session                   → authHandler.Session        (session)
//	GET  /api/categories                → notesHandler.Categories    (session)
//	GET  /api/categories/{name}/notes   → notesHandler.NotesByCategory (session)
//	POST /api/notes                     → notesHandler.Upload        (session)
//	GET  /api/notes/{id}                → notesHandler.Note          (session)
//	GET  /api/notes/{id}/comments       → notesHandler.ListComments  (session)
//	POST /api/notes/{id}/comments       → notesHandler.AddComment    (session)
//	GET  /api/search?q=                 → notesHandler.Search        (session)
//	GET  /api/favorites                 → notesHandler.Favorites     (session)
//	POST /api/favorites/{id}            → notesHandler.ToggleFavorite (session)
//	GET  /metrics                       → Prometheus exposition
//
// Every /api request is delayed by latency before reaching its handler.
func NewRouter(
	authHandler *AuthHandler,
	notesHandler *NotesHandler,
	sessions middleware.SessionSource,
	latency time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Bodies, when present, must be JSON
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Use(middleware.SimulatedLatency(latency, logger))

		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires the active session token
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessions))

			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)

			r.Get("/categories", notesHandler.Categories)
			r.Get("/categories/{name}/notes", notesHandler.NotesByCategory)

			r.Post("/notes", notesHandler.Upload)
			r.Get("/notes/{id}", notesHandler.Note)
			r.Get("/notes/{id}/comments", notesHandler.ListComments)
			r.Post("/notes/{id}/comments", notesHandler.AddComment)

			r.Get("/search", notesHandler.Search)

			r.Get("/favorites", notesHandler.Favorites)
			r.Post("/favorites/{id}", notesHandler.ToggleFavorite)
		})
	})

	return r
}
