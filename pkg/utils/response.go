package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"video-backend/internal/apperrors"
)

// Envelope is the uniform response body: {"success": ..., "data": ...} on
// success, {"success": false, "error": {...}} on failure.
type Envelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Error      *apperrors.Error `json:"error,omitempty"`
	Pagination *Pagination      `json:"pagination,omitempty"`
}

// Pagination mirrors the page/limit/total block of list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

// JSONMessage writes a success envelope with a human message and data.
func JSONMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Message: message, Data: data})
}

// JSONPaginated writes a success envelope with a pagination block.
func JSONPaginated(w http.ResponseWriter, status int, data interface{}, p Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Data: data, Pagination: &p})
}

// Error maps a business error kind to its HTTP status and writes the
// failure envelope. Internal faults are logged server-side only.
func Error(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)
	if appErr.Kind == apperrors.KindInternal && appErr.Err != nil {
		log.Printf("[HTTP] internal error: %v", appErr.Err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(appErr.Kind))
	json.NewEncoder(w).Encode(Envelope{Success: false, Error: appErr})
}

// StatusFor returns the HTTP status for a business error kind.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindInvalidState, apperrors.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
