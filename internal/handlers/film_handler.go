package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
	"video-backend/internal/services"
	"video-backend/pkg/utils"
)

type FilmHandler struct {
	Service *services.FilmService
}

func NewFilmHandler(s *services.FilmService) *FilmHandler {
	return &FilmHandler{Service: s}
}

func (h *FilmHandler) ListFilms(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	films, total, err := h.Service.List(r.Context(), page, limit)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONPaginated(w, http.StatusOK, films, utils.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	})
}

// TopFilms returns the five most rented films.
func (h *FilmHandler) TopFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.Service.Top(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, films)
}

// SearchFilms searches by title (default), actor or category via the
// "type" query parameter.
func (h *FilmHandler) SearchFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.Service.Search(r.Context(), r.URL.Query().Get("search"), r.URL.Query().Get("type"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, films)
}

func (h *FilmHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	film, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, film)
}

// FilmAvailability returns the free-copy count for a film at a store.
func (h *FilmHandler) FilmAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	storeID, _ := strconv.Atoi(r.URL.Query().Get("store_id"))
	available, err := h.Service.Availability(r.Context(), id, storeID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]int{"available_copies": available})
}

func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		models.CreateFilmRequest
		Copies int `json:"copies"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	film, err := h.Service.Create(r.Context(), &body.CreateFilmRequest, body.Copies)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONMessage(w, http.StatusCreated, "film added to catalog", film)
}
