package middleware

import (
	"net/http"
	"strings"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/utils"
)

// TokenVerifier resolves a bearer token to the identity it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (utils.Identity, error)
}

var (
	errMissingToken = apperr.New(apperr.Unauthorized, "Token não fornecido").
			WithHint("Você precisa estar logado para acessar este recurso")
	errInvalidToken = apperr.New(apperr.Forbidden, "Token inválido ou expirado").
			WithHint("Faça login novamente")
)

// RequireAuth rejects requests without a verifiable bearer token: 401 when
// no token is sent, 403 when it does not verify.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.WriteError(w, r, errMissingToken)
				return
			}

			id, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.WriteError(w, r, errInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if id, err := verifier.VerifyToken(token); err == nil {
					r = r.WithContext(utils.WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken takes the second space-separated field of the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}
