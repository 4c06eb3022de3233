package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes builds the chi router for the REST API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
		})

		r.Route("/notes", func(r chi.Router) {
			// anonymous read path
			r.Get("/public/{username}", s.handlePublicByUsername)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAccessToken)
				r.Get("/", s.handleListNotes)
				r.Post("/", s.handleCreateNote)
				r.Put("/{id}", s.handleUpdateNote)
				r.Delete("/{id}", s.handleDeleteNote)
				r.Patch("/{id}/visibility", s.handleSetVisibility)
				r.Patch("/{id}/publish", s.handlePublish)
				r.Patch("/{id}/unpublish", s.handleUnpublish)
			})
		})

		r.Get("/publicnote", s.handlePublicPaged)
	})

	return r
}
