package handlers

import (
	"encoding/json"
	"net/http"

	"video-backend/internal/apperrors"
	"video-backend/internal/models"
	"video-backend/internal/services"
	"video-backend/pkg/utils"
)

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: s}
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	customers, total, err := h.Service.List(r.Context(), page, limit)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONPaginated(w, http.StatusOK, customers, utils.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	})
}

func (h *CustomerHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Service.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, customers)
}

// GetCustomer returns the customer with their rental history.
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	customer, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	customer, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONMessage(w, http.StatusCreated, "customer created", customer)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	var req models.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperrors.Validation("invalid request body"))
		return
	}

	customer, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONMessage(w, http.StatusOK, "customer updated", customer)
}

// DeleteCustomer removes a customer unless they still hold copies.
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSONMessage(w, http.StatusOK, "customer deleted", nil)
}
