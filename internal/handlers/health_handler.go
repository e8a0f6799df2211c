package handlers

import (
	"encoding/json"
	"net/http"

	"video-backend/internal/health"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Health reports service, database and cache status. It writes 503 when
// the database is unreachable so load balancers stop routing here.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}

// SystemHealth reports host CPU, memory and disk usage.
func (h *HealthHandler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Checker.CheckSystem())
}
