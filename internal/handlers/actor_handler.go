package handlers

import (
	"net/http"

	"video-backend/internal/services"
	"video-backend/pkg/utils"
)

type ActorHandler struct {
	Service *services.ActorService
}

func NewActorHandler(s *services.ActorService) *ActorHandler {
	return &ActorHandler{Service: s}
}

func (h *ActorHandler) ListActors(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	actors, total, err := h.Service.List(r.Context(), page, limit)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONPaginated(w, http.StatusOK, actors, utils.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	})
}

// TopActors returns the five actors whose films rent the most.
func (h *ActorHandler) TopActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.Service.Top(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, actors)
}

func (h *ActorHandler) GetActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	actor, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, actor)
}

func (h *ActorHandler) ActorFilms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	films, err := h.Service.Films(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, films)
}
