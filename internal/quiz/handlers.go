package quiz

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/fragancia/fragancia-api/internal/perfumes"
	"github.com/fragancia/fragancia-api/internal/recommend"
	"github.com/fragancia/fragancia-api/internal/utils"
	"github.com/fragancia/fragancia-api/internal/validation"
)

const allAnswersRequired = "Todas as respostas são obrigatórias"

var errNoQuiz = apperr.NewNotFound("Nenhum quiz encontrado")

// Recommender must not fail; it degrades to an empty list.
type Recommender interface {
	Recommend(ctx context.Context, a recommend.Answers) []perfumes.Summary
}

type Handler struct {
	store       *Store
	recommender Recommender
}

func NewHandler(store *Store, recommender Recommender) *Handler {
	return &Handler{store: store, recommender: recommender}
}

type submitResponse struct {
	Message         string             `json:"message"`
	QuizID          uint               `json:"quiz_id"`
	Recommendations []perfumes.Summary `json:"recommendations"`
}

// Submit stores the answers and returns recommendations for them. The
// submission stands even when no recommendation can be computed.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req submitRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	req = submitRequest{
		Period:     strings.TrimSpace(req.Period),
		Event:      strings.TrimSpace(req.Event),
		Family:     strings.TrimSpace(req.Family),
		Intensity:  strings.TrimSpace(req.Intensity),
		Impression: strings.TrimSpace(req.Impression),
	}
	if err := validation.Struct(&req); err != nil {
		e := apperr.From(err)
		httputil.WriteError(w, r, apperr.NewValidation(allAnswersRequired, e.Details...))
		return
	}

	resp := &Response{
		UserID:     userID,
		Period:     req.Period,
		Event:      req.Event,
		Family:     req.Family,
		Intensity:  req.Intensity,
		Impression: req.Impression,
	}
	if err := h.store.Create(r.Context(), resp); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	recs := h.recommender.Recommend(r.Context(), resp.Answers())
	if recs == nil {
		recs = []perfumes.Summary{}
	}

	logging.Ctx(r.Context()).Info().
		Uint("quiz_id", resp.ID).
		Int("recommendations", len(recs)).
		Msg("quiz submitted")
	httputil.WriteJSON(w, http.StatusCreated, submitResponse{
		Message:         "Quiz salvo com sucesso!",
		QuizID:          resp.ID,
		Recommendations: recs,
	})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	list, err := h.store.History(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	resp, err := h.store.Latest(r.Context(), userID)
	if errors.Is(err, ErrNoQuiz) {
		httputil.WriteError(w, r, errNoQuiz)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
