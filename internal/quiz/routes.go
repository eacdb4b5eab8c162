package quiz

import (
	"net/http"

	"github.com/fragancia/fragancia-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h *Handler, verifier middleware.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequireAuth(verifier))

	r.Post("/", h.Submit)
	r.Get("/history", h.History)
	r.Get("/latest", h.Latest)

	return r
}
