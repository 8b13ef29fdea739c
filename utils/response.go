package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]any

// Pagination is attached to list responses.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"success": false, "message": msg})
}

// RespondSuccess wraps payloads in the {success, data} envelope.
func RespondSuccess(w http.ResponseWriter, code int, data any) {
	RespondWithJSON(w, code, M{"success": true, "data": data})
}

func RespondSuccessMsg(w http.ResponseWriter, code int, data any, message string) {
	RespondWithJSON(w, code, M{"success": true, "message": message, "data": data})
}

// RespondList attaches pagination metadata to a success envelope.
func RespondList(w http.ResponseWriter, data any, p Pagination) {
	RespondWithJSON(w, http.StatusOK, M{"success": true, "data": data, "pagination": p})
}
