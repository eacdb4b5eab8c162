package favorites

import (
	"net/http"

	"github.com/fragancia/fragancia-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under /favorites. All routes need a token.
func SetupRoutes(h *Handler, verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequireAuth(verifier))

	r.Get("/", h.List)
	r.Get("/check/{perfumeID}", h.Check)
	r.Post("/{perfumeID}", h.Add)
	r.Delete("/{perfumeID}", h.Remove)

	return r
}
