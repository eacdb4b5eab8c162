package auth

import (
	"net/http"

	"github.com/fragancia/fragancia-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under /auth. The limiter guards the credential endpoints.
func SetupRoutes(h *Handler, verifier middleware.TokenVerifier, limiter func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))
		r.Get("/me", h.Me)
		r.Delete("/me", h.Deactivate)
	})

	return r
}
