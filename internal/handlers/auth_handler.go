package handlers

import (
	"encoding/json"
	"net/http"

	"video-backend/internal/apperrors"
	"video-backend/internal/middleware"
	"video-backend/internal/models"
	"video-backend/internal/services"
	"video-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
}

func NewAuthHandler(s *services.UserService) *AuthHandler {
	return &AuthHandler{Service: s}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONMessage(w, http.StatusCreated, "account created", resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated staff account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, apperrors.Validation("not authenticated"))
		return
	}

	user, err := h.Service.Get(r.Context(), userID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
