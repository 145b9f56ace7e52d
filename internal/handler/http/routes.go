package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip, h.withHashing)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/refresh", h.refresh)

		r.Route("/api/folders", h.folders.mount)
		r.Route("/api/notes", func(r chi.Router) {
			h.notes.mount(r)
			r.Get("/{id}/binary", h.downloadBinary)
			r.Put("/{id}/binary", h.uploadBinary)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
