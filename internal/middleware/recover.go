package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/logging"
)

// Recoverer turns a panic into a JSON 500. The panic value and stack are
// included only in development.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			stack := string(debug.Stack())
			logging.Ctx(r.Context()).Error().
				Str("panic", fmt.Sprint(rec)).
				Str("path", r.URL.Path).
				Str("stack", stack).
				Msg("handler panic")

			body := httputil.ErrorBody{Error: "Erro interno do servidor"}
			if httputil.Development() {
				body.Message = fmt.Sprint(rec)
				body.Stack = stack
			}
			httputil.WriteJSON(w, http.StatusInternalServerError, body)
		}()

		next.ServeHTTP(w, r)
	})
}
