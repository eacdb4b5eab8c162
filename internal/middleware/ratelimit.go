package middleware

import (
	"net/http"
	"time"

	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/go-chi/httprate"
)

// RateLimitByIP allows perMinute requests per client IP. Zero disables it.
func RateLimitByIP(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.ErrorBody{
				Error:   "Muitas tentativas",
				Message: "Tente novamente em instantes",
			})
		}),
	)
}
