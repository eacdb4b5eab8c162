package favorites

import (
	"errors"
	"net/http"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/utils"
)

var (
	errPerfumeNotFound  = apperr.NewNotFound("Perfume não encontrado")
	errAlreadyFavorited = apperr.NewConflict("Perfume já está nos favoritos")
	errNotFavorited     = apperr.NewNotFound("Favorito não encontrado")
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	list, err := h.store.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	perfumeID, err := httputil.PathID(r, "perfumeID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	fav, err := h.store.Add(r.Context(), userID, perfumeID)
	switch {
	case errors.Is(err, ErrPerfumeNotFound):
		httputil.WriteError(w, r, errPerfumeNotFound)
	case errors.Is(err, ErrAlreadyFavorited):
		httputil.WriteError(w, r, errAlreadyFavorited)
	case err != nil:
		httputil.WriteError(w, r, err)
	default:
		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":  "Perfume adicionado aos favoritos!",
			"favorite": fav,
		})
	}
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	perfumeID, err := httputil.PathID(r, "perfumeID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	err = h.store.Remove(r.Context(), userID, perfumeID)
	if errors.Is(err, ErrNotFavorited) {
		httputil.WriteError(w, r, errNotFavorited)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Perfume removido dos favoritos!"})
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	perfumeID, err := httputil.PathID(r, "perfumeID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	ok, err := h.store.Has(r.Context(), userID, perfumeID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"is_favorite": ok})
}
