package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/fragancia/fragancia-api/internal/metrics"
	"github.com/fragancia/fragancia-api/internal/utils"
	"github.com/fragancia/fragancia-api/internal/validation"
	"github.com/google/uuid"
)

var (
	errBadCredentials = apperr.New(apperr.Unauthorized, "Email ou senha incorretos")
	errEmailTaken     = apperr.NewConflict("Email já cadastrado")
	errUserNotFound   = apperr.NewNotFound("Usuário não encontrado")
)

type Handler struct {
	store  *Store
	hasher PasswordHasher
	tokens *TokenService
}

func NewHandler(store *Store, hasher PasswordHasher, tokens *TokenService) *Handler {
	return &Handler{store: store, hasher: hasher, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	result := "error"
	defer func() { metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc() }()

	var req registerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		result = "invalid"
		httputil.WriteError(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(&req); err != nil {
		result = "invalid"
		httputil.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	exists, err := h.store.EmailExists(ctx, req.Email)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if exists {
		result = "conflict"
		httputil.WriteError(w, r, errEmailTaken)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := h.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			result = "conflict"
			httputil.WriteError(w, r, errEmailTaken)
			return
		}
		httputil.WriteError(w, r, err)
		return
	}

	token, err := h.issue(user)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	result = "success"
	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")
	httputil.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "Usuário criado com sucesso!",
		Token:   token,
		User:    user,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	result := "error"
	defer func() { metrics.AuthLoginsTotal.WithLabelValues(result).Inc() }()

	var req loginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		result = "invalid"
		httputil.WriteError(w, r, err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(&req); err != nil {
		result = "invalid"
		httputil.WriteError(w, r, err)
		return
	}

	user, err := h.store.FindActiveByEmail(r.Context(), req.Email)
	if errors.Is(err, ErrUserNotFound) {
		result = "failure"
		httputil.WriteError(w, r, errBadCredentials)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		result = "failure"
		httputil.WriteError(w, r, errBadCredentials)
		return
	}

	token, err := h.issue(user)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	result = "success"
	httputil.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login realizado com sucesso!",
		Token:   token,
		User:    user,
	})
}

// Me returns the caller's profile. A valid token for a deactivated account
// gets 404.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	user, err := h.store.FindActiveByID(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		httputil.WriteError(w, r, errUserNotFound)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	err := h.store.Deactivate(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		httputil.WriteError(w, r, errUserNotFound)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", userID).Msg("user deactivated")
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Conta desativada com sucesso"})
}

func (h *Handler) issue(u *User) (string, error) {
	return h.tokens.Issue(utils.Identity{UserID: u.ID, Email: u.Email, Name: u.Name})
}
