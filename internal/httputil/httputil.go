// Package httputil holds the JSON request/response helpers used by every handler.
package httputil

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

const invalidData = "Dados inválidos"

var development atomic.Bool

// SetDevelopment toggles exposing internal error text in responses.
func SetDevelopment(on bool) { development.Store(on) }

func Development() bool { return development.Load() }

// ErrorBody is the envelope returned for every failed request.
type ErrorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Details []apperr.FieldError `json:"details,omitempty"`
	Path    string              `json:"path,omitempty"`
	Stack   string              `json:"stack,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("encode response")
	}
}

// WriteError renders err as the error envelope. Internal errors are logged
// and their cause is only shown in development.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)

	body := ErrorBody{Error: e.Message, Message: e.Hint, Details: e.Details}
	if e.Kind == apperr.Internal {
		logging.Ctx(r.Context()).Error().Err(e.Err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		if Development() && e.Err != nil {
			body.Message = e.Err.Error()
		}
	}
	WriteJSON(w, e.Kind.Status(), body)
}

// DecodeJSON reads a single JSON object into dst. Malformed bodies and type
// mismatches become validation errors.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.NewValidation(invalidData, apperr.FieldError{
			Field:   field,
			Message: "Tipo de valor inválido",
		})
	case errors.Is(err, io.EOF):
		return apperr.NewValidation(invalidData, apperr.FieldError{
			Field:   "body",
			Message: "Corpo da requisição vazio",
		})
	default:
		return apperr.NewValidation(invalidData, apperr.FieldError{
			Field:   "body",
			Message: "JSON malformado",
		})
	}
}

// PathID parses a positive integer chi URL parameter.
func PathID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.NewValidation(invalidData, apperr.FieldError{
			Field:   name,
			Message: "ID inválido",
		})
	}
	return uint(id), nil
}
