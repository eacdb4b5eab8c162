// Package routes wires the feature routers into the API.
package routes

import (
	"net/http"
	"time"

	"github.com/fragancia/fragancia-api/internal/auth"
	"github.com/fragancia/fragancia-api/internal/db"
	"github.com/fragancia/fragancia-api/internal/favorites"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/metrics"
	"github.com/fragancia/fragancia-api/internal/middleware"
	"github.com/fragancia/fragancia-api/internal/perfumes"
	"github.com/fragancia/fragancia-api/internal/quiz"
	"github.com/fragancia/fragancia-api/internal/recommend"
	"github.com/fragancia/fragancia-api/internal/reviews"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	AllowedOrigins []string
	AuthRateLimit  int // per minute per IP, 0 disables
}

// MigrateAll creates schema when it is set and then every feature's tables.
// Tables land in schema through the connection's search_path.
func MigrateAll(d *gorm.DB, schema string) error {
	if err := db.EnsureSchema(d, schema); err != nil {
		return err
	}
	for _, migrate := range []func(*gorm.DB) error{
		auth.Init,
		perfumes.Init,
		favorites.Init,
		reviews.Init,
		quiz.Init,
	} {
		if err := migrate(d); err != nil {
			return err
		}
	}
	return nil
}

func New(d *gorm.DB, opts Options) http.Handler {
	tokens := auth.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	catalog := perfumes.NewStore(d)

	authHandler := auth.NewHandler(auth.NewStore(d), auth.NewPasswordHasher(opts.BcryptCost), tokens)
	perfumeHandler := perfumes.NewHandler(catalog)
	favoriteHandler := favorites.NewHandler(favorites.NewStore(d, catalog))
	reviewHandler := reviews.NewHandler(reviews.NewStore(d, catalog))
	quizHandler := quiz.NewHandler(quiz.NewStore(d), recommend.NewEngine(catalog))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health)
		r.Mount("/auth", auth.SetupRoutes(authHandler, tokens, middleware.RateLimitByIP(opts.AuthRateLimit)))
		r.Mount("/perfumes", perfumes.SetupRoutes(perfumeHandler, tokens))
		r.Mount("/brands", perfumes.BrandRoutes(perfumeHandler))
		r.Mount("/favorites", favorites.SetupRoutes(favoriteHandler, tokens))
		r.Mount("/reviews", reviews.SetupRoutes(reviewHandler, tokens))
		r.Mount("/quiz", quiz.SetupRoutes(quizHandler, tokens))
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "Fragancia API está rodando!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorBody{
		Error: "Rota não encontrada",
		Path:  r.URL.Path,
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorBody{
		Error: "Método não permitido",
		Path:  r.URL.Path,
	})
}
