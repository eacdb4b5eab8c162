package reviews

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/utils"
	"github.com/fragancia/fragancia-api/internal/validation"
)

var (
	errPerfumeNotFound = apperr.NewNotFound("Perfume não encontrado")
	errAlreadyReviewed = apperr.NewConflict("Você já avaliou este perfume. Use PUT para atualizar.")
	errUpdateNotFound  = apperr.NewNotFound("Avaliação não encontrada ou você não tem permissão")
	errDeleteNotFound  = apperr.NewNotFound("Avaliação não encontrada")
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListForPerfume(w http.ResponseWriter, r *http.Request) {
	perfumeID, err := httputil.PathID(r, "perfumeID")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	list, err := h.store.ListForPerfume(r.Context(), perfumeID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		for i := range list {
			mine := list[i].UserID == userID
			list[i].Mine = &mine
		}
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	list, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	perfumeID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	req, err := decodeReview(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	rv, err := h.store.Create(r.Context(), userID, perfumeID, *req.Rating, req.Comment)
	switch {
	case errors.Is(err, ErrPerfumeNotFound):
		httputil.WriteError(w, r, errPerfumeNotFound)
	case errors.Is(err, ErrAlreadyReviewed):
		httputil.WriteError(w, r, errAlreadyReviewed)
	case err != nil:
		httputil.WriteError(w, r, err)
	default:
		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Avaliação criada com sucesso!",
			"review":  rv,
		})
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	reviewID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	req, err := decodeReview(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	rv, err := h.store.Update(r.Context(), reviewID, userID, *req.Rating, req.Comment)
	if errors.Is(err, ErrReviewNotFound) {
		httputil.WriteError(w, r, errUpdateNotFound)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Avaliação atualizada com sucesso!",
		"review":  rv,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	reviewID, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	err = h.store.Delete(r.Context(), reviewID, userID)
	if errors.Is(err, ErrReviewNotFound) {
		httputil.WriteError(w, r, errDeleteNotFound)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Avaliação deletada com sucesso!"})
}

func decodeReview(r *http.Request) (*reviewRequest, error) {
	var req reviewRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return nil, err
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
