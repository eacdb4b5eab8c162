package perfumes

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/fragancia/fragancia-api/internal/httputil"
	"github.com/fragancia/fragancia-api/internal/logging"
	"github.com/fragancia/fragancia-api/internal/utils"
)

const (
	popularLimit     = 10
	recommendedLimit = 3
)

var errPerfumeNotFound = apperr.NewNotFound("Perfume não encontrado")

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	h.markFavorites(r, list)
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	list, err := h.store.Search(r.Context(), f)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	h.markFavorites(r, list)
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Popular(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.Popular(r.Context(), popularLimit)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	h.markFavorites(r, list)
	httputil.WriteJSON(w, http.StatusOK, list)
}

// Recommended is a random sample, unrelated to quiz answers.
func (h *Handler) Recommended(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.Random(r.Context(), recommendedLimit)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	h.markFavorites(r, list)
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	detail, err := h.store.Get(r.Context(), id)
	if IsNotFound(err) {
		httputil.WriteError(w, r, errPerfumeNotFound)
		return
	}
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	one := []Summary{detail.Summary}
	h.markFavorites(r, one)
	detail.IsFavorite = one[0].IsFavorite
	httputil.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.store.Brands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, brands)
}

// markFavorites sets is_favorite for identified callers. A lookup failure
// only drops the flag.
func (h *Handler) markFavorites(r *http.Request, list []Summary) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok || len(list) == 0 {
		return
	}

	favs, err := h.store.FavoritedBy(r.Context(), userID)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("favorite flags unavailable")
		return
	}
	for i := range list {
		fav := favs[list[i].ID]
		list[i].IsFavorite = &fav
	}
}

func parseFilter(q url.Values) (Filter, error) {
	f := Filter{
		Gender: strings.TrimSpace(param(q, "gender", "genero")),
		Season: strings.TrimSpace(param(q, "season", "estacao")),
	}

	var details []apperr.FieldError
	if raw := param(q, "brand", "marca"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			details = append(details, apperr.FieldError{Field: "brand", Message: "Marca deve ser um número inteiro"})
		} else {
			brand := uint(id)
			f.BrandID = &brand
		}
	}
	if raw := param(q, "max_price", "preco_max"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			details = append(details, apperr.FieldError{Field: "max_price", Message: "Preço máximo inválido"})
		} else {
			f.MaxPrice = &price
		}
	}

	if len(details) > 0 {
		return Filter{}, apperr.NewValidation("Dados inválidos", details...)
	}
	return f, nil
}

// param returns the first non-empty value among the given query keys.
func param(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}
