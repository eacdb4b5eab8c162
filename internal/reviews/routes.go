package reviews

import (
	"net/http"

	"github.com/fragancia/fragancia-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under /reviews. Reading a perfume's reviews is public;
// everything else needs a token.
func SetupRoutes(h *Handler, verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()

	r.With(middleware.OptionalAuth(verifier)).Get("/perfume/{perfumeID}", h.ListForPerfume)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.Get("/mine", h.Mine)
		// {id} is a perfume id for POST and a review id for PUT and DELETE.
		r.Post("/{id}", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
