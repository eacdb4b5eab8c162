package perfumes

import (
	"net/http"

	"github.com/fragancia/fragancia-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under /perfumes. Every route accepts an optional token.
func SetupRoutes(h *Handler, verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.OptionalAuth(verifier))

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/popular", h.Popular)
	r.Get("/recommended", h.Recommended)
	r.Get("/{id}", h.Get)

	return r
}

// BrandRoutes mounts under /brands.
func BrandRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Brands)
	return r
}
