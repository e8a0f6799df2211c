package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"video-backend/internal/apperrors"
	"video-backend/internal/middleware"
	"video-backend/internal/models"
	"video-backend/internal/services"
	"video-backend/pkg/utils"
)

type RentalHandler struct {
	Service *services.RentalService
}

func NewRentalHandler(s *services.RentalService) *RentalHandler {
	return &RentalHandler{Service: s}
}

// CreateRental checks a customer out with one copy of a film.
func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	staffID, _ := middleware.GetUserIDFromContext(r.Context())
	rental, payment, err := h.Service.Rent(r.Context(), &req, staffID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONMessage(w, http.StatusCreated, "film rented", map[string]interface{}{
		"rental":  rental,
		"payment": payment,
	})
}

// ReturnRental closes an active rental.
func (h *RentalHandler) ReturnRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	rental, err := h.Service.Return(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONMessage(w, http.StatusOK, "film returned", rental)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	rental, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	receipt, err := h.Service.Receipt(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, receipt)
}

// GetReceiptPDF streams the receipt as a printable PDF.
func (h *RentalHandler) GetReceiptPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	pdf, err := h.Service.ReceiptPDF(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", id))
	w.Write(pdf)
}

// CustomerRentals lists a customer's rentals, newest first. The optional
// status query filters to "active" or "returned".
func (h *RentalHandler) CustomerRentals(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	rentals, err := h.Service.History(r.Context(), id, r.URL.Query().Get("status"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rentals)
}
